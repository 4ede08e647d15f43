package http

import (
	"math/rand"
	"net/http"
	"time"

	"tilefront/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// @Summary Create new match
// @Description Register a rendezvous code two peers can meet on
// @Tags Match
// @Accept json
// @Produce json
// @Param request body http.CreateMatchRequest true "Creator info"
// @Success 200 {object} map[string]interface{}
// @Router /create-match [post]
func CreateMatchHandler(mem *store.MemoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateMatchRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "playerName required"})
			return
		}
		match := &store.Match{
			ID:          uuid.NewString(),
			Code:        randCode(6),
			CreatorName: req.PlayerName,
			CreatedAt:   time.Now(),
		}
		mem.SaveMatch(match)
		c.JSON(http.StatusOK, CreateMatchResponse{MatchCode: match.Code, MatchID: match.ID})
	}
}

// @Summary Get match status
// @Description Returns the match and how many peers are connected
// @Tags Match
// @Produce json
// @Param code path string true "Match Code"
// @Success 200 {object} map[string]interface{}
// @Router /match/{code} [get]
func MatchStatusHandler(mem *store.MemoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")
		match, ok := mem.GetMatch(code)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
			return
		}
		c.JSON(http.StatusOK, MatchStatusResponse{
			MatchCode:   match.Code,
			CreatorName: match.CreatorName,
			Peers:       match.Peers,
		})
	}
}

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randCode(n int) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[r.Intn(len(letters))]
	}
	return string(b)
}
