package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"tilefront/internal/config"
	"tilefront/internal/game"
	"tilefront/internal/session"
	"tilefront/internal/transport"
)

// Terminal network peer: creates or joins a match on the rendezvous
// server, then plays over the relayed websocket channel.
func main() {
	cfg := config.Load()
	server := flag.String("server", cfg.ServerURL, "rendezvous server base URL")
	create := flag.Bool("create", false, "create a new match")
	join := flag.String("join", "", "join an existing match code")
	name := flag.String("name", "Player", "display name")
	flag.Parse()

	var (
		code string
		role session.Role
	)
	switch {
	case *create:
		code = createMatch(*server, *name)
		role = session.RoleInitiator
		fmt.Println("Match code:", code)
	case *join != "":
		code = *join
		role = session.RoleResponder
	default:
		log.Fatal("pass -create or -join CODE")
	}

	peer, err := transport.DialRelay(wsURL(*server, code))
	if err != nil {
		log.Fatalf("failed to reach relay: %v", err)
	}

	var mu sync.Mutex
	sess := session.New(role, peer, *name)
	done := make(chan struct{})
	var once sync.Once
	finish := func() { once.Do(func() { close(done) }) }

	peer.SetHandlers(
		func(frame []byte) {
			mu.Lock()
			defer mu.Unlock()
			if err := sess.HandleFrame(frame); err != nil {
				fmt.Println("\nsync failure:", err)
				finish()
				return
			}
			render(sess)
			if sess.Phase() == session.PhaseGameOver {
				finish()
			}
		},
		func() {
			mu.Lock()
			defer mu.Unlock()
			fmt.Println("\nOpponent connected.")
			if err := sess.Start(); err != nil {
				fmt.Println("failed to start:", err)
				finish()
			}
		},
		func() {
			mu.Lock()
			defer mu.Unlock()
			sess.HandleDisconnect()
			fmt.Println("\nConnection lost; session over.")
			finish()
		},
	)
	go peer.ReadLoop()

	fmt.Println("Waiting for opponent...")
	fmt.Println("Commands: \"x y\" place, \"auto\" random placement, \"fx fy tx ty\" act, \"name N\", \"board\".")

	input := make(chan string)
	go func() {
		reader := bufio.NewReader(os.Stdin)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				close(input)
				return
			}
			input <- strings.TrimSpace(line)
		}
	}()

	for {
		select {
		case <-done:
			mu.Lock()
			render(sess)
			if msg := sess.Snapshot().WinMessage; msg != "" {
				fmt.Println(msg)
			}
			mu.Unlock()
			return
		case line, ok := <-input:
			if !ok {
				return
			}
			mu.Lock()
			handleCommand(sess, line)
			mu.Unlock()
		}
	}
}

func handleCommand(sess *session.Session, line string) {
	parts := strings.Fields(line)
	switch {
	case line == "board":
		render(sess)
	case line == "auto":
		for sess.Phase() == session.PhasePlacement && sess.PlacementTurn() == sess.LocalPlayer() {
			if _, err := sess.AutoPlaceTurn(); err != nil {
				fmt.Println("placement failed:", err)
				return
			}
		}
		render(sess)
	case len(parts) == 2 && parts[0] == "name":
		if err := sess.SetDisplayName(parts[1]); err != nil {
			fmt.Println("failed to set name:", err)
		}
	case len(parts) == 2:
		pos, ok := parseInts(parts)
		if !ok {
			fmt.Println("Enter two integers, e.g. 0 1")
			return
		}
		if _, err := sess.PlaceNext(game.Coord{X: pos[0], Y: pos[1]}); err != nil {
			fmt.Println("Invalid placement:", err)
			return
		}
		render(sess)
	case len(parts) == 4:
		v, ok := parseInts(parts)
		if !ok {
			fmt.Println("Need four integers: fx fy tx ty")
			return
		}
		if err := act(sess, game.Coord{X: v[0], Y: v[1]}, game.Coord{X: v[2], Y: v[3]}); err != nil {
			fmt.Println("Invalid action:", err)
			return
		}
		render(sess)
	default:
		fmt.Println("Unknown command.")
	}
}

func act(sess *session.Session, from, to game.Coord) error {
	fromCard, ok := sess.Board().At(from)
	if !ok {
		return game.ErrInvalidPlacement
	}
	toCard, ok := sess.Board().At(to)
	if !ok {
		return game.ErrNotAdjacent
	}
	if err := sess.SelectUnit(fromCard.ID); err != nil {
		return err
	}
	if _, err := sess.ResolveTarget(toCard.ID); err != nil {
		sess.Deselect()
		return err
	}
	return nil
}

func createMatch(server, name string) string {
	body, _ := json.Marshal(map[string]string{"playerName": name})
	resp, err := http.Post(server+"/create-match", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("failed to create match: %v", err)
	}
	defer resp.Body.Close()
	var out struct {
		MatchCode string `json:"matchCode"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.MatchCode == "" {
		log.Fatalf("bad create-match response: %v", err)
	}
	return out.MatchCode
}

func wsURL(server, code string) string {
	url := strings.Replace(server, "http://", "ws://", 1)
	url = strings.Replace(url, "https://", "wss://", 1)
	return url + "/ws?match_code=" + code
}

func parseInts(parts []string) ([]int, bool) {
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

var kindGlyphs = map[game.UnitKind]string{
	game.MobileCommand: "C",
	game.Tank:          "T",
	game.Infantry:      "I",
	game.Artillery:     "A",
	game.SpecialOps:    "S",
}

func render(sess *session.Session) {
	snap := sess.Snapshot()
	fmt.Printf("\nphase=%s", snap.Phase)
	switch snap.Phase {
	case session.PhasePlacement:
		fmt.Printf(" placing=%d (you are %d)", snap.PlacementTurn, snap.LocalPlayer)
	case session.PhaseGameplay:
		fmt.Printf(" turn=%d (you are %d)", snap.Turn, snap.LocalPlayer)
	}
	fmt.Println()
	if len(snap.Tiles) == 0 {
		return
	}
	minX, minY := snap.Tiles[0].X, snap.Tiles[0].Y
	maxX, maxY := minX, minY
	byPos := map[game.Coord]session.TileView{}
	for _, t := range snap.Tiles {
		byPos[game.Coord{X: t.X, Y: t.Y}] = t
		if t.X < minX {
			minX = t.X
		}
		if t.X > maxX {
			maxX = t.X
		}
		if t.Y < minY {
			minY = t.Y
		}
		if t.Y > maxY {
			maxY = t.Y
		}
	}
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			tile, ok := byPos[game.Coord{X: x, Y: y}]
			switch {
			case !ok:
				fmt.Print("  .  ")
			case !tile.Occupied:
				fmt.Print(" [ ] ")
			case tile.Unit == nil:
				fmt.Printf(" [?%d]", tile.Owner)
			default:
				fmt.Printf(" [%s%d]", kindGlyphs[tile.Unit.Kind], tile.Owner)
			}
		}
		fmt.Println()
	}
}
