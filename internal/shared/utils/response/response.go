package response

import "github.com/gin-gonic/gin"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StandardApiResponse is the JSON envelope. The unavailable-dates list and the
// public booking form reply are the only bare bodies.
type StandardApiResponse struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
}

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// Success writes a success envelope
func Success(c *gin.Context, code int, message string, data interface{}) {
	RespondJSON(c, StatusSuccess, code, message, data, nil)
}

// Error writes an error envelope and aborts the handler chain
func Error(c *gin.Context, code int, message string, details interface{}) {
	RespondJSON(c, StatusError, code, message, nil, details)
	c.Abort()
}
