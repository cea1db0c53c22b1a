package intent

// defaultPatterns maps tool ids to the regular expressions tried against a
// lower-cased user message. Every matching pattern adds one point to the
// tool's score; the table is deliberately explicit so routing behavior stays
// testable instead of hiding behind a smarter classifier.
var defaultPatterns = map[string][]string{
	"project-charter": {
		`\bcharter\b`,
		`\b(kick\s*off|initiate|start)\b.*\bproject\b`,
		`\bproject\b.*\b(objectives?|scope statement)\b`,
	},
	"wbs-builder": {
		`\bwbs\b`,
		`\bwork\s+breakdown\b`,
		`\bwork\s+packages?\b`,
		`\bbreak\b.*\b(down|into)\b.*\b(scope|tasks?|packages?)\b`,
	},
	"schedule-planner": {
		`\bschedule\b`,
		`\b(timeline|milestones?|gantt)\b`,
		`\bplan\b.*\b(activities|durations?)\b`,
	},
	"cost-estimator": {
		`\b(cost|budget)\b.*\b(estimate|estimation|plan)\b`,
		`\bestimate\b.*\b(cost|budget|price)\b`,
		`\bhow much\b.*\b(cost|budget)\b`,
		`\bbudget\b`,
	},
	"boq-generator": {
		`\bboq\b`,
		`\bbill of quantities\b`,
		`\bquantity take\s*off\b`,
	},
	"design-reviewer": {
		`\bdesign review\b`,
		`\breview\b.*\b(design|drawings?|package)\b`,
		`\bcode compliance\b`,
	},
	"risk-register": {
		`\brisks?\b`,
		`\brisk register\b`,
		`\bmitigat(e|ion)\b`,
	},
	"progress-reporter": {
		`\bprogress\b.*\breport\b`,
		`\b(weekly|monthly|site)\b.*\b(report|status)\b`,
		`\bstatus update\b`,
	},
	"closeout-reporter": {
		`\bclose\s*out\b`,
		`\blessons learned\b`,
		`\bfinal report\b`,
		`\bhand\s*over\b`,
	},
}
