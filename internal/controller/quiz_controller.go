package controller

import (
	"horizon_backend/internal/model"
	"horizon_backend/internal/service"
	"horizon_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
	Translator  *service.TranslationService
	Moderation  *service.ModerationService
}

func NewQuizController(quizService *service.QuizService, translator *service.TranslationService, moderation *service.ModerationService) *QuizController {
	return &QuizController{QuizService: quizService, Translator: translator, Moderation: moderation}
}

// quizView is the public shape: translated strings, no question time
// limits leaked before a session starts.
type quizView struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	IsOpen        bool   `json:"isOpen"`
	QuestionCount int    `json:"questionCount"`
}

func (c *QuizController) toView(quiz *model.Quiz, lang string) quizView {
	return quizView{
		ID:            quiz.ID,
		Title:         c.Translator.T(lang, quiz.TitleKey),
		Description:   c.Translator.T(lang, quiz.DescriptionKey),
		IsOpen:        quiz.IsOpen,
		QuestionCount: len(quiz.Questions),
	}
}

// @Summary List application quizzes
// @Description Lists every quiz with open/closed state, translated for the requested language
// @Tags quizzes
// @Produce json
// @Param lang query string false "Language" default(en)
// @Success 200 {object} util.Response
// @Router /api/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	lang := ctx.DefaultQuery("lang", service.DefaultLanguage)

	quizzes, err := c.QuizService.ListAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	views := make([]quizView, len(quizzes))
	for i := range quizzes {
		views[i] = c.toView(&quizzes[i], lang)
	}
	util.Success(ctx, views)
}

// @Summary Get one quiz
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Param lang query string false "Language" default(en)
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	lang := ctx.DefaultQuery("lang", service.DefaultLanguage)

	quiz, err := c.QuizService.FindByID(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, c.toView(quiz, lang))
}

// @Summary My submissions
// @Description Lists the authenticated user's past applications and their statuses
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/submissions/mine [get]
func (c *QuizController) MySubmissions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	subs, err := c.Moderation.ListByUser(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subs)
}
