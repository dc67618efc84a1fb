package api

// messageRequestSchema leaves message length to the conversation, which
// counts it after trimming.
func messageRequestSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"message":   map[string]interface{}{"type": "string"},
			"sessionId": map[string]interface{}{"type": "string", "maxLength": 128},
		},
		"required": []string{"message"},
	}
}

func roiRequestSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"monthlyRevenue": map[string]interface{}{"type": "integer", "minimum": 0},
			"wastePercent":   map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 100},
			"marginPercent":  map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 100},
		},
		"required": []string{"monthlyRevenue", "wastePercent", "marginPercent"},
	}
}
