package api

import (
	"github.com/gin-gonic/gin"

	"github.com/telekom/job-container-naming/pkg/apiresponses"
	"github.com/telekom/job-container-naming/pkg/naming"
)

type StorageAccountController struct{}

func (StorageAccountController) BasePath() string {
	return "storage-accounts"
}

func (StorageAccountController) Handlers() []gin.HandlerFunc {
	return nil
}

func (sc StorageAccountController) Register(rg *gin.RouterGroup) error {
	rg.GET("classic", sc.handleClassic)
	return nil
}

func (StorageAccountController) handleClassic(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		apiresponses.RespondBadRequest(c, "query parameter id is required")
		return
	}
	apiresponses.RespondOK(c, gin.H{
		"resourceId": id,
		"classic":    naming.IsClassicStorageAccount(id),
	})
}
