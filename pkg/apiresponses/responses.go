/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package apiresponses

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes carried in APIError.Code.
const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeNotFound      = "NOT_FOUND"
	CodeInternalError = "INTERNAL_ERROR"
	CodeRateLimited   = "RATE_LIMITED"
)

// APIError is the body of every non-2xx response.
type APIError struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, apiErr APIError) {
	c.AbortWithStatusJSON(status, apiErr)
}

// RespondBadRequest rejects a request with an unusable job id, name or body.
func RespondBadRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, APIError{Error: message, Code: CodeBadRequest})
}

// RespondBadRequestWithDetails is RespondBadRequest with a pointer to the
// offending input, e.g. "jobIds[3]".
func RespondBadRequestWithDetails(c *gin.Context, message, details string) {
	respondError(c, http.StatusBadRequest, APIError{Error: message, Code: CodeBadRequest, Details: details})
}

func RespondNotFoundSimple(c *gin.Context, message string) {
	respondError(c, http.StatusNotFound, APIError{Error: message, Code: CodeNotFound})
}

// RespondInternalError hides cause from the client. When log is set the
// cause is logged under the failed operation.
func RespondInternalError(c *gin.Context, operation string, cause any, log *zap.SugaredLogger) {
	if log != nil {
		log.Errorw(fmt.Sprintf("Failed to %s", operation), "error", cause)
	}
	respondError(c, http.StatusInternalServerError, APIError{
		Error: fmt.Sprintf("failed to %s", operation),
		Code:  CodeInternalError,
	})
}

func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// RespondTooManyRequests tells a client it exceeded its request rate.
func RespondTooManyRequests(c *gin.Context) {
	respondError(c, http.StatusTooManyRequests, APIError{
		Error: "rate limit exceeded, retry later",
		Code:  CodeRateLimited,
	})
}
