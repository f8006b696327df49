package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BlackWLN/seafight/internal/board"
	"github.com/BlackWLN/seafight/internal/dependencies/clock"
	"github.com/BlackWLN/seafight/internal/dependencies/random"
	"github.com/BlackWLN/seafight/internal/model"
	"github.com/BlackWLN/seafight/internal/protocol"
	"github.com/BlackWLN/seafight/internal/services/stats"
)

// Controller implements the session and turn state machine. Each
// request maps to a transition on the owned State that yields the
// notifications to deliver; nothing here touches the transport.
type Controller struct {
	state  *State
	stats  stats.ServiceInterface
	clock  clock.Clock
	random random.Random
	logger *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	state *State,
	statsService stats.ServiceInterface,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		state:  state,
		stats:  statsService,
		clock:  clock,
		random: random,
		logger: logger,
	}
}

// State exposes the registries for inspection; only the dispatch loop
// and tests may call this.
func (c *Controller) State() *State {
	return c.state
}

// Handle routes one decoded request to its transition and returns the
// notifications it produced. Illegal requests yield a single S_MSG
// rejection and leave all state unchanged; defective ones (referencing
// players that cannot exist) are logged and dropped.
func (c *Controller) Handle(ctx context.Context, pkt protocol.Packet) []Notification {
	switch pkt.Type {
	case protocol.Login:
		return c.handleLogin(pkt)
	case protocol.CreateGame:
		return c.handleCreateGame(pkt)
	case protocol.JoinGame:
		return c.handleJoinGame(pkt)
	case protocol.LeaveGame:
		return c.handleLeaveGame(ctx, pkt)
	case protocol.Shoot:
		return c.handleShoot(ctx, pkt)
	case protocol.Logout:
		return c.handleLogout(ctx, pkt)
	case protocol.GetStats:
		return c.handleGetStats(ctx, pkt)
	case protocol.GetGameList:
		return []Notification{c.gameListFor(model.Login(pkt.Sender))}
	default:
		c.logger.Warn("dropping packet of unknown type",
			slog.Int("type", int(pkt.Type)),
			slog.String("sender", pkt.Sender),
		)
		return nil
	}
}

// player resolves the sender of a request against the registry
func (c *Controller) player(sender string) (*model.Player, error) {
	p := c.state.FindPlayer(model.Login(sender))
	if p == nil {
		return nil, model.ErrPlayerNotFound
	}
	return p, nil
}

// rejectTo maps a rule violation onto the S_MSG text shown to the
// offender. Every rejection the protocol can express is named by a
// model sentinel so transitions and tests can match on the cause.
func rejectTo(to model.Login, err error) Notification {
	var text string
	switch {
	case errors.Is(err, model.ErrLoginTaken):
		text = fmt.Sprintf("Login '%s' is already in use!", to)
	case errors.Is(err, model.ErrAlreadyInGame):
		text = "You are already in a game!"
	case errors.Is(err, model.ErrEmptyRoomName):
		text = "Game name cannot be empty!"
	case errors.Is(err, model.ErrRoomExists):
		text = "Game with this name already exists!"
	case errors.Is(err, model.ErrRoomNotFound):
		text = "Game not found!"
	case errors.Is(err, model.ErrRoomFull):
		text = "Game is already full!"
	case errors.Is(err, model.ErrOwnRoom):
		text = "You cannot join your own game!"
	case errors.Is(err, model.ErrNotInGame):
		text = "You are not in any game!"
	case errors.Is(err, model.ErrNotYourTurn):
		text = "Now is NOT your turn. Wait for opponent."
	default:
		text = "Request rejected."
	}
	return msgTo(to, text)
}

func (c *Controller) handleLogin(pkt protocol.Packet) []Notification {
	// The login names the client's reply channel, so an empty one or
	// one with a path separator would make delivery open a path outside
	// the pipe directory. No rejection is sent: delivering it would
	// have to open that same path.
	if pkt.Sender == "" || strings.ContainsRune(pkt.Sender, '/') {
		c.logger.Warn("dropping login with unusable name", slog.String("login", pkt.Sender))
		return nil
	}

	login := model.Login(pkt.Sender)
	if c.state.FindPlayer(login) != nil {
		c.logger.Info("login rejected, already online", slog.String("login", pkt.Sender))
		return []Notification{rejectTo(login, model.ErrLoginTaken)}
	}

	c.state.AddPlayer(&model.Player{
		Login:    login,
		Board:    board.New(),
		JoinedAt: c.clock.Now(),
	})
	c.logger.Info("player logged in", slog.String("login", pkt.Sender))

	return []Notification{
		msgTo(login, "Welcome to the Sea Fight server!"),
		c.gameListFor(login),
	}
}

func (c *Controller) handleCreateGame(pkt protocol.Packet) []Notification {
	login := model.Login(pkt.Sender)
	player, err := c.player(pkt.Sender)
	if err != nil {
		c.logger.Warn("create from unknown player", slog.String("login", pkt.Sender))
		return nil
	}

	if player.InGame || player.GameName != "" {
		return []Notification{rejectTo(login, model.ErrAlreadyInGame)}
	}

	name := model.RoomName(pkt.GameName)
	if name == "" {
		return []Notification{rejectTo(login, model.ErrEmptyRoomName)}
	}
	if c.state.FindRoom(name) != nil {
		return []Notification{rejectTo(login, model.ErrRoomExists)}
	}

	c.state.AddRoom(&model.Room{
		Name:      name,
		Creator:   login,
		Player1:   login,
		CreatedAt: c.clock.Now(),
	})
	player.GameName = name

	c.logger.Info("room created",
		slog.String("room", pkt.GameName),
		slog.String("creator", pkt.Sender),
	)

	notifs := []Notification{notifyTo(login, protocol.SrvGameCreated,
		fmt.Sprintf("Game '%s' created! Waiting for opponent...\nUse '/leave' to cancel", name))}
	return append(notifs, c.gameListBroadcast()...)
}

func (c *Controller) handleJoinGame(pkt protocol.Packet) []Notification {
	login := model.Login(pkt.Sender)
	player, err := c.player(pkt.Sender)
	if err != nil {
		c.logger.Warn("join from unknown player", slog.String("login", pkt.Sender))
		return nil
	}

	if player.InGame {
		return []Notification{rejectTo(login, model.ErrAlreadyInGame)}
	}

	room := c.state.FindRoom(model.RoomName(pkt.GameName))
	if room == nil {
		return []Notification{rejectTo(login, model.ErrRoomNotFound)}
	}
	// Only a waiting owner can be the creator of an open room, so this
	// check must run before the busy check or it could never fire
	if room.Creator == login {
		return []Notification{rejectTo(login, model.ErrOwnRoom)}
	}
	if player.GameName != "" {
		return []Notification{rejectTo(login, model.ErrAlreadyInGame)}
	}
	if room.IsFull {
		return []Notification{rejectTo(login, model.ErrRoomFull)}
	}

	room.Player2 = login
	room.IsFull = true
	player.GameName = room.Name
	player.InGame = true

	if creator := c.state.FindPlayer(room.Creator); creator != nil {
		creator.InGame = true
	}

	c.logger.Info("room joined",
		slog.String("room", pkt.GameName),
		slog.String("login", pkt.Sender),
	)

	return c.startGame(room)
}

// startGame pairs the two players, places both fleets, grants the
// joiner the first turn and folds the room into the player records.
func (c *Controller) startGame(room *model.Room) []Notification {
	p1 := c.state.FindPlayer(room.Player1)
	p2 := c.state.FindPlayer(room.Player2)
	if p1 == nil || p2 == nil {
		c.logger.Error("room references missing player",
			slog.String("room", string(room.Name)),
			slog.String("player1", string(room.Player1)),
			slog.String("player2", string(room.Player2)),
		)
		return nil
	}

	room.IsActive = true

	p1.Opponent = p2.Login
	p1.Board = board.New()
	p1.IsTurn = false

	p2.Opponent = p1.Login
	p2.Board = board.New()
	p2.IsTurn = true

	for _, p := range []*model.Player{p1, p2} {
		if err := p.Board.PlaceShipsRandomly(c.random); err != nil {
			c.logger.Error("ship placement failed",
				slog.String("login", string(p.Login)),
				slog.String("error", err.Error()),
			)
		}
	}

	// The room's state now lives entirely on the two players
	c.state.RemoveRoom(room.Name)

	c.logger.Info("game started",
		slog.String("room", string(room.Name)),
		slog.String("player1", string(p1.Login)),
		slog.String("player2", string(p2.Login)),
	)

	notifs := []Notification{
		notifyTo(p1.Login, protocol.SrvGameStart, fmt.Sprintf("%s (Wait for opponent turn)", p2.Login)),
		notifyTo(p2.Login, protocol.SrvGameStart, fmt.Sprintf("%s (YOUR TURN)", p1.Login)),
		boardTo(p1, p1.Board, true, "YOUR BOARD:"),
		boardTo(p2, p2.Board, true, "YOUR BOARD:"),
	}
	return append(notifs, c.gameListBroadcast()...)
}

func (c *Controller) handleLeaveGame(ctx context.Context, pkt protocol.Packet) []Notification {
	login := model.Login(pkt.Sender)
	player, err := c.player(pkt.Sender)
	if err != nil {
		c.logger.Warn("leave from unknown player", slog.String("login", pkt.Sender))
		return nil
	}

	if player.GameName == "" {
		return []Notification{rejectTo(login, model.ErrNotInGame)}
	}

	var notifs []Notification
	roomDeleted := false

	if player.InGame {
		notifs = append(notifs, c.forfeitToOpponent(ctx, player)...)
	} else if room := c.state.FindRoom(player.GameName); room != nil {
		c.state.RemoveRoom(room.Name)
		roomDeleted = true
		c.logger.Info("room cancelled",
			slog.String("room", string(room.Name)),
			slog.String("creator", pkt.Sender),
		)
	}

	player.Reset()

	notifs = append(notifs, msgTo(login, "You left the game."))
	// The broadcast already reaches the leaver, who is idle again by
	// now; a direct list is only needed when no broadcast goes out
	if roomDeleted {
		notifs = append(notifs, c.gameListBroadcast()...)
	} else {
		notifs = append(notifs, c.gameListFor(login))
	}
	return notifs
}

// forfeitToOpponent awards the win to the remaining player of an
// active game; the leaver's own reset is up to the caller
func (c *Controller) forfeitToOpponent(ctx context.Context, leaver *model.Player) []Notification {
	opponent := c.state.FindPlayer(leaver.Opponent)
	if opponent == nil {
		c.logger.Error("active player has no registered opponent",
			slog.String("login", string(leaver.Login)),
			slog.String("opponent", string(leaver.Opponent)),
		)
		return nil
	}

	opponent.Reset()
	c.recordGameEnd(ctx, opponent.Login, leaver.Login)

	return []Notification{
		notifyTo(opponent.Login, protocol.SrvGameOver, "Opponent left the game.\n YOU WON!"),
	}
}

func (c *Controller) handleShoot(ctx context.Context, pkt protocol.Packet) []Notification {
	login := model.Login(pkt.Sender)
	shooter, err := c.player(pkt.Sender)
	if err != nil {
		c.logger.Warn("shot from unknown player", slog.String("login", pkt.Sender))
		return nil
	}
	if !shooter.InGame || shooter.Opponent == "" {
		c.logger.Warn("shot from player not in a game", slog.String("login", pkt.Sender))
		return nil
	}

	if !shooter.IsTurn {
		return []Notification{rejectTo(login, model.ErrNotYourTurn)}
	}

	victim := c.state.FindPlayer(shooter.Opponent)
	if victim == nil {
		c.logger.Error("shooter's opponent missing from registry",
			slog.String("login", pkt.Sender),
			slog.String("opponent", string(shooter.Opponent)),
		)
		return nil
	}

	result := victim.Board.ProcessShot(pkt.X, pkt.Y)

	// A repeated or out-of-range shot changes nothing: no stats, turn retained
	if result == board.ShotRepeat {
		return []Notification{msgTo(login,
			"You have already shot here or the coordinates are wrong. Repeat.")}
	}

	c.recordShot(ctx, login, result == board.ShotHit || result == board.ShotLose)

	c.logger.Info("shot resolved",
		slog.String("shooter", pkt.Sender),
		slog.Int("x", pkt.X),
		slog.Int("y", pkt.Y),
		slog.String("result", result.String()),
	)

	if result == board.ShotLose {
		shooter.Reset()
		victim.Reset()
		c.recordGameEnd(ctx, login, victim.Login)

		c.logger.Info("game over",
			slog.String("winner", pkt.Sender),
			slog.String("loser", string(victim.Login)),
		)

		return []Notification{
			notifyTo(login, protocol.SrvGameOver, "WIN! You destroy all opponent's ships\n"),
			notifyTo(victim.Login, protocol.SrvGameOver, "LOSE! Your ships destroyed\n"),
		}
	}

	shooterText := "MISS. Change turn..."
	victimText := "Opponent MISS! Your turn!"
	if result == board.ShotHit {
		shooterText = "HIT! Shoot again!"
		victimText = "Your ship has been HIT! Opponent's turn..."
	}

	if result == board.ShotMiss {
		shooter.IsTurn = false
		victim.IsTurn = true
	}

	return []Notification{
		shotResultTo(login, pkt.X, pkt.Y, result, shooterText),
		boardTo(shooter, victim.Board, false, "Opponent's board (Radar):"),
		shotResultTo(victim.Login, pkt.X, pkt.Y, result, victimText),
		boardTo(victim, victim.Board, true, "Your board:"),
	}
}

func (c *Controller) handleLogout(ctx context.Context, pkt protocol.Packet) []Notification {
	login := model.Login(pkt.Sender)
	player := c.state.FindPlayer(login)
	if player == nil {
		return nil
	}

	var notifs []Notification
	roomDeleted := false

	if player.InGame {
		notifs = append(notifs, c.forfeitToOpponent(ctx, player)...)
	} else if player.GameName != "" {
		// Owner of an unfilled room: take the room down with them
		if room := c.state.FindRoom(player.GameName); room != nil {
			c.state.RemoveRoom(room.Name)
			roomDeleted = true
		}
	}

	c.state.RemovePlayer(login)
	c.logger.Info("player logged out", slog.String("login", pkt.Sender))

	if roomDeleted {
		notifs = append(notifs, c.gameListBroadcast()...)
	}
	return notifs
}

func (c *Controller) handleGetStats(ctx context.Context, pkt protocol.Packet) []Notification {
	login := model.Login(pkt.Sender)
	summary, err := c.stats.FormatSummary(ctx, login)
	if err != nil {
		c.logger.Error("could not load stats",
			slog.String("login", pkt.Sender),
			slog.String("error", err.Error()),
		)
		return []Notification{msgTo(login, "Statistics are unavailable right now.")}
	}

	return []Notification{notifyTo(login, protocol.SrvStats, summary)}
}

// gameListFor builds the S_GAME_LIST notification for one player
func (c *Controller) gameListFor(login model.Login) Notification {
	var sb strings.Builder
	sb.WriteString("Available games:\n")
	sb.WriteString("================\n")

	rooms := c.state.OpenRooms()
	for _, room := range rooms {
		fmt.Fprintf(&sb, "%s (created by %s)\n", room.Name, room.Creator)
	}

	if len(rooms) == 0 {
		sb.WriteString("No available games. Create your own with /create <game_name>\n")
	} else {
		sb.WriteString("\nTo join game: /join <game_name>\n")
	}

	return notifyTo(login, protocol.SrvGameList, sb.String())
}

// gameListBroadcast refreshes the list for every player not in a game
func (c *Controller) gameListBroadcast() []Notification {
	var notifs []Notification
	for _, p := range c.state.IdlePlayers() {
		notifs = append(notifs, c.gameListFor(p.Login))
	}
	return notifs
}

// Stats failures must not abort a transition that already happened, so
// they are logged and swallowed here.

func (c *Controller) recordShot(ctx context.Context, login model.Login, hit bool) {
	if err := c.stats.RecordShot(ctx, login, hit); err != nil {
		c.logger.Error("could not record shot",
			slog.String("login", string(login)),
			slog.String("error", err.Error()),
		)
	}
}

func (c *Controller) recordGameEnd(ctx context.Context, winner, loser model.Login) {
	if err := c.stats.RecordGameEnd(ctx, winner, loser); err != nil {
		c.logger.Error("could not record game result",
			slog.String("winner", string(winner)),
			slog.String("loser", string(loser)),
			slog.String("error", err.Error()),
		)
	}
}

func boardTo(p *model.Player, b *board.Board, revealShips bool, title string) Notification {
	return notifyTo(p.Login, protocol.SrvBoard, title+"\n"+b.Render(revealShips))
}

func shotResultTo(to model.Login, x, y int, result board.ShotResult, text string) Notification {
	return Notification{
		To: to,
		Packet: protocol.Packet{
			Type:       protocol.SrvShotResult,
			Sender:     protocol.ServerSender,
			Payload:    text,
			X:          x,
			Y:          y,
			ShotResult: int(result),
		},
	}
}
