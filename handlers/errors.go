package handlers

import (
	"errors"
	"net/http"

	"palette/models"
	"palette/services"
	"palette/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotGroupMember),
		errors.Is(err, services.ErrNotPostOwner),
		errors.Is(err, services.ErrNotGroupCreator):
		return http.StatusForbidden
	case errors.Is(err, services.ErrBudgetExists),
		errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrGroupNameTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrTotpRequired):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrInvalidPeriod),
		errors.Is(err, models.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrInsufficientStorage):
		return http.StatusInsufficientStorage
	}
	return http.StatusInternalServerError
}

// respondError maps service errors to statuses, internal details are only logged
func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	_ = c.Error(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Errorf("%s %s failed", c.Request.Method, c.Request.URL.Path)
		c.AbortWithStatusJSON(status, Response{"internal error"})
		return
	}
	c.AbortWithStatusJSON(status, Response{err.Error()})
}
