package http

// CreateMatchRequest represents the payload for /create-match.
type CreateMatchRequest struct {
	PlayerName string `json:"playerName"`
}

// CreateMatchResponse carries the rendezvous code the second player
// joins with.
type CreateMatchResponse struct {
	MatchCode string `json:"matchCode"`
	MatchID   string `json:"matchId"`
}

// MatchStatusResponse reports how many peers are connected.
type MatchStatusResponse struct {
	MatchCode   string `json:"matchCode"`
	CreatorName string `json:"creatorName"`
	Peers       int    `json:"peers"`
}
