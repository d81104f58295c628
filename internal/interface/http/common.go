package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-post-api/internal/domain/entity"
	"github.com/oksasatya/go-user-post-api/pkg/apperror"
	"github.com/oksasatya/go-user-post-api/pkg/response"
	"github.com/oksasatya/go-user-post-api/pkg/validation"
)

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type postResponse struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// toUserResponse never carries the password.
func toUserResponse(u *entity.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email}
}

func toUserResponses(users []entity.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}

func toPostResponse(p *entity.Post) postResponse {
	return postResponse{ID: p.ID, Content: p.Content, UserID: p.UserID, CreatedAt: p.CreatedAt}
}

func toPostResponses(posts []entity.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for i := range posts {
		out = append(out, toPostResponse(&posts[i]))
	}
	return out
}

// pathID parses the :id segment. A non-integer id matches no resource.
func pathID(c *gin.Context, notFound string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 0 {
		response.Error(c, http.StatusNotFound, notFound)
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, validation.PayloadMessage(err))
		return false
	}
	return true
}

// fail writes err and logs it when it is not a client error.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	if logger != nil && apperror.KindOf(err) == apperror.KindInternal {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
		}).Error("request failed")
	}
	response.Fail(c, err)
}
