package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/An-Array/SM-Backend/internal/api/middleware"
	"github.com/An-Array/SM-Backend/internal/api/models"
	"github.com/An-Array/SM-Backend/internal/api/response"
	"github.com/An-Array/SM-Backend/internal/api/service"
)

// VoteController handles the vote endpoint.
type VoteController struct {
	voteService service.VoteService
}

// NewVoteController creates a new VoteController.
func NewVoteController(voteService service.VoteService) *VoteController {
	return &VoteController{
		voteService: voteService,
	}
}

// Vote handles POST /vote. dir=1 casts an up-vote, dir=0 retracts it; any
// other value is rejected at binding.
func (vc *VoteController) Vote(c *gin.Context) {
	var req models.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	if err := vc.voteService.Vote(c.Request.Context(), middleware.CurrentUser(c), &req); err != nil {
		response.FromError(c, err)
		return
	}

	message := "successfully added vote"
	if *req.Dir == models.VoteRetract {
		message = "successfully deleted vote"
	}
	c.JSON(http.StatusCreated, gin.H{"message": message})
}
