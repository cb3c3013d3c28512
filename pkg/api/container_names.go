package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/telekom/job-container-naming/pkg/apiresponses"
	"github.com/telekom/job-container-naming/pkg/metrics"
	"github.com/telekom/job-container-naming/pkg/naming"
	"github.com/telekom/job-container-naming/pkg/system"
)

// maxBatchSize bounds the number of ids or names accepted in one request.
const maxBatchSize = 1000

type deriveRequest struct {
	JobIDs []string `json:"jobIds"`
}

type validateRequest struct {
	Names []string `json:"names"`
}

type ContainerNameController struct {
	log       *zap.SugaredLogger
	deriver   *naming.Deriver
	algorithm naming.Algorithm
}

func NewContainerNameController(log *zap.SugaredLogger, deriver *naming.Deriver, alg naming.Algorithm) *ContainerNameController {
	return &ContainerNameController{log: log, deriver: deriver, algorithm: alg}
}

func (cc *ContainerNameController) BasePath() string {
	return "container-names"
}

func (cc *ContainerNameController) Handlers() []gin.HandlerFunc {
	return nil
}

func (cc *ContainerNameController) Register(rg *gin.RouterGroup) error {
	rg.GET("*jobID", cc.handleGet)
	rg.POST("", cc.handleDerive)
	rg.POST("validate", cc.handleValidate)
	return nil
}

func (cc *ContainerNameController) resolve(jobID string) (naming.Result, error) {
	res, err := cc.deriver.Resolve(jobID)
	if err != nil {
		if errors.Is(err, naming.ErrEmptyIdentifier) {
			metrics.ContainerNameErrors.WithLabelValues("empty_job_id").Inc()
		}
		return naming.Result{}, err
	}
	metrics.ObserveDerivation(string(cc.algorithm), res.Hashed)
	return res, nil
}

func (cc *ContainerNameController) handleGet(c *gin.Context) {
	reqLog := system.GetReqLogger(c, cc.log)
	// catch-all so job ids containing "/" resolve too
	res, err := cc.resolve(strings.TrimPrefix(c.Param("jobID"), "/"))
	if err != nil {
		apiresponses.RespondBadRequest(c, err.Error())
		return
	}
	reqLog.Debugw("Derived container name", "jobID", res.JobID, "container", res.ContainerName, "hashed", res.Hashed)
	apiresponses.RespondOK(c, res)
}

func (cc *ContainerNameController) handleDerive(c *gin.Context) {
	reqLog := system.GetReqLogger(c, cc.log)

	var req deriveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiresponses.RespondBadRequestWithDetails(c, "invalid request body", err.Error())
		return
	}
	if len(req.JobIDs) == 0 {
		apiresponses.RespondBadRequest(c, "jobIds must not be empty")
		return
	}
	if len(req.JobIDs) > maxBatchSize {
		apiresponses.RespondBadRequest(c, fmt.Sprintf("at most %d jobIds per request", maxBatchSize))
		return
	}

	items := make([]naming.Result, 0, len(req.JobIDs))
	for i, id := range req.JobIDs {
		res, err := cc.resolve(id)
		if err != nil {
			apiresponses.RespondBadRequestWithDetails(c, err.Error(), fmt.Sprintf("jobIds[%d]", i))
			return
		}
		items = append(items, res)
	}
	reqLog.Debugw("Derived container names", "count", len(items))
	apiresponses.RespondOK(c, gin.H{"items": items})
}

func (cc *ContainerNameController) handleValidate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiresponses.RespondBadRequestWithDetails(c, "invalid request body", err.Error())
		return
	}
	if len(req.Names) == 0 {
		apiresponses.RespondBadRequest(c, "names must not be empty")
		return
	}
	if len(req.Names) > maxBatchSize {
		apiresponses.RespondBadRequest(c, fmt.Sprintf("at most %d names per request", maxBatchSize))
		return
	}

	items := make([]naming.ValidationResult, 0, len(req.Names))
	for _, name := range req.Names {
		res := naming.Check(name)
		metrics.ObserveValidation(res.Valid)
		items = append(items, res)
	}
	apiresponses.RespondOK(c, gin.H{"items": items})
}
