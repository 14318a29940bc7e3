package handlers

import (
	"affiliatenest/internal/services"
	"affiliatenest/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AffiliateHandler struct {
	affiliateService services.AffiliateService
	referralService  services.ReferralService
	payoutService    services.PayoutService
	signupURL        string
}

func NewAffiliateHandler(
	affiliateService services.AffiliateService,
	referralService services.ReferralService,
	payoutService services.PayoutService,
	signupURL string,
) *AffiliateHandler {
	return &AffiliateHandler{
		affiliateService: affiliateService,
		referralService:  referralService,
		payoutService:    payoutService,
		signupURL:        signupURL,
	}
}

// CreateProgram registers a new affiliate program owned by the caller.
func (h *AffiliateHandler) CreateProgram(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.CreateProgramRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	program, err := h.affiliateService.CreateProgram(c.Request.Context(), ownerID, &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Program created", program)
}

// ListPrograms returns the caller's programs.
func (h *AffiliateHandler) ListPrograms(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	programs, err := h.affiliateService.ListPrograms(c.Request.Context(), ownerID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Programs retrieved", programs)
}

// GenerateLink issues a trackable link for a program the caller owns.
func (h *AffiliateHandler) GenerateLink(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request struct {
		ProgramID string `json:"programId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	programID, err := primitive.ObjectIDFromHex(request.ProgramID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid program ID")
		return
	}

	response, err := h.affiliateService.GenerateLink(c.Request.Context(), ownerID, programID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Link generated", response)
}

// Track records a visit through a trackable link and points the visitor at
// the signup page.
func (h *AffiliateHandler) Track(c *gin.Context) {
	_, err := h.referralService.RecordVisit(c.Request.Context(), c.Param("link"))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Referral tracked", gin.H{
		"redirect": h.signupURL,
	})
}

// Payout transfers a commission to an affiliate's payout account.
func (h *AffiliateHandler) Payout(c *gin.Context) {
	requesterID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.PayoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	transfer, err := h.payoutService.Payout(c.Request.Context(), requesterID, &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Payout transferred", gin.H{"transfer": transfer})
}

func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, false
	}

	userID, ok := value.(primitive.ObjectID)
	return userID, ok
}
