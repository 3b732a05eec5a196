package importer

import "strconv"

// fallbackTemplate builds a fixed-shape template for a response that
// declares no JSON schema, keyed by status-code class. statusCode has
// already been checked numeric by the caller.
func fallbackTemplate(status string, description string) map[string]any {
	code, _ := strconv.Atoi(status)

	if status[0] == '2' {
		template := map[string]any{
			"status_code": code,
			"status":      "OK",
			"service":     "${mock.string[5-10]}",
			"resource":    "${mock.string[8-15]}",
			"operation":   "${mock.string[6-12]}",
			"data":        map[string]any{},
		}

		switch status {
		case "200":
			template["data"] = map[string]any{
				"id":         "${mock.uuid}",
				"created_at": "${mock.date.now}",
				"updated_at": "${mock.date.now}",
			}
		case "201":
			template["data"] = map[string]any{
				"id":         "${mock.uuid}",
				"created_at": "${mock.date.now}",
			}
		case "204":
			// No content.
			return map[string]any{}
		}

		return template
	}

	message := description
	if message == "" {
		message = "HTTP " + status + " Error"
	}
	template := map[string]any{
		"status_code": code,
		"error":       true,
		"message":     message,
		"detail":      "${mock.string[20-50]}",
		"timestamp":   "${mock.timestamp}",
	}

	switch status {
	case "400":
		template["type"] = "BadRequestError"
		template["validation_errors"] = []any{
			map[string]any{
				"field":   "${mock.string[5-10]}",
				"message": "${mock.string[10-30]}",
			},
		}
	case "401":
		template["type"] = "UnauthorizedError"
	case "404":
		template["type"] = "NotFoundError"
	case "422":
		template["type"] = "ValidationError"
	}

	return template
}
