package controller

import (
	"net/http"

	"horizon_backend/internal/service"
	"horizon_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	Sessions *service.SessionService
}

func NewSessionController(sessions *service.SessionService) *SessionController {
	return &SessionController{Sessions: sessions}
}

type startSessionRequest struct {
	QuizID   string `json:"quizId" binding:"required"`
	Language string `json:"language"`
}

// @Summary Start an application session
// @Description Creates a session in the rules state for an open quiz
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body startSessionRequest true "Quiz to apply for"
// @Success 201 {object} util.Response
// @Router /api/sessions [post]
func (c *SessionController) Start(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req startSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Language == "" {
		req.Language = service.DefaultLanguage
	}

	view, err := c.Sessions.Start(user, req.QuizID, req.Language)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// @Summary Get session state
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id} [get]
func (c *SessionController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Sessions.Get(ctx.Param("id"), user.UserID)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Begin taking the quiz
// @Description Moves the session from rules to taking and starts the countdown
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/begin [post]
func (c *SessionController) Begin(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Sessions.Begin(ctx.Param("id"), user.UserID)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

type draftRequest struct {
	Text string `json:"text"`
}

// @Summary Sync the answer draft
// @Description Mirrors the applicant's typed answer so a timeout captures it
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body draftRequest true "Draft text"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/draft [put]
func (c *SessionController) UpdateDraft(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req draftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Sessions.UpdateDraft(ctx.Param("id"), user.UserID, req.Text); err != nil {
		c.writeError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type advanceRequest struct {
	QuestionIndex *int   `json:"questionIndex" binding:"required"`
	Answer        string `json:"answer"`
}

// @Summary Submit the current answer
// @Description Records the answer for the given question index and advances (or submits on the last question)
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body advanceRequest true "Answer"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/advance [post]
func (c *SessionController) Advance(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req advanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.Sessions.Advance(ctx.Param("id"), user.UserID, *req.QuestionIndex, req.Answer)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Retry a failed submission
// @Description Re-attempts persisting the finished application without duplicating answers
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/retry [post]
func (c *SessionController) Retry(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Sessions.RetrySubmit(ctx.Param("id"), user.UserID)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary Abandon the session
// @Description Cancels an unsubmitted attempt; nothing is persisted
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id} [delete]
func (c *SessionController) Abandon(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Sessions.Abandon(ctx.Param("id"), user.UserID); err != nil {
		c.writeError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *SessionController) writeError(ctx *gin.Context, err error) {
	switch err {
	case util.ErrQuizNotFound, util.ErrSessionNotFound:
		util.NotFound(ctx)
	case util.ErrQuizClosed, util.ErrQuizNoQuestions:
		util.Error(ctx, http.StatusUnprocessableEntity, err.Error())
	case util.ErrSessionNotTaking, util.ErrSessionFinished, util.ErrStaleQuestionIndex:
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
