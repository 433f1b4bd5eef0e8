package scheduler

// Parameter schemas per task type. Every field is optional (handlers supply
// defaults) but a present field must have the right shape, so typos like a
// string "platforms" fail at creation instead of at fire time.
var paramSchemas = map[TaskType]string{
	TaskContentGeneration: `{
		"type": "object",
		"properties": {
			"content_type":   {"type": "string"},
			"platform":       {"type": "string"},
			"topic":          {"type": "string"},
			"tone":           {"type": "string"},
			"include_images": {"type": "boolean"},
			"auto_post":      {"type": "boolean"},
			"platforms":      {"type": "array", "items": {"type": "string"}}
		}
	}`,
	TaskSocialPost: `{
		"type": "object",
		"properties": {
			"platforms": {"type": "array", "items": {"type": "string"}},
			"content":   {"type": "string"},
			"images":    {"type": "array", "items": {"type": "string"}},
			"hashtags":  {"type": "array", "items": {"type": "string"}},
			"topic":     {"type": "string"},
			"tone":      {"type": "string"}
		}
	}`,
	TaskAnalyticsReport: `{
		"type": "object",
		"properties": {
			"email_report": {"type": "boolean"},
			"recipient":    {"type": "string"}
		}
	}`,
	TaskImageGeneration: `{
		"type": "object",
		"properties": {
			"prompt": {"type": "string"},
			"style":  {"type": "string"}
		}
	}`,
	TaskCampaignReview:      `{"type": "object"}`,
	TaskPerformanceAnalysis: `{"type": "object"}`,
}
