package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/BlackWLN/seafight/internal/channel"
	"github.com/BlackWLN/seafight/internal/protocol"
)

// Session is one interactive client connection: a listener goroutine
// printing asynchronous server notifications next to a stdin command
// loop. The only state shared between the two is a couple of flags.
type Session struct {
	cfg     *Config
	inbound *channel.Pipe

	running atomic.Bool
	inGame  atomic.Bool
}

// NewSession creates the personal notification channel for the login
func NewSession(cfg *Config) (*Session, error) {
	inbound := channel.New(channel.ClientPath(cfg.PipeDir, cfg.Login))
	if err := inbound.Create(); err != nil {
		return nil, fmt.Errorf("could not create a personal channel: %w", err)
	}
	if err := inbound.OpenRead(); err != nil {
		_ = inbound.Remove()
		return nil, fmt.Errorf("could not open the personal channel: %w", err)
	}

	return &Session{cfg: cfg, inbound: inbound}, nil
}

// Run logs in, starts the listener and processes commands until /quit
func (s *Session) Run() error {
	s.running.Store(true)
	defer s.cleanup()

	go s.listen()

	s.send(protocol.Packet{Type: protocol.Login})

	s.printMainMenu()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if !s.handleCommand(strings.TrimSpace(scanner.Text())) {
			return nil
		}
		fmt.Print("> ")
	}
	// stdin closed: leave cleanly
	s.send(protocol.Packet{Type: protocol.Logout})
	return scanner.Err()
}

// handleCommand dispatches one input line; returns false on /quit
func (s *Session) handleCommand(line string) bool {
	if line == "" {
		return true
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "/create":
		if len(fields) != 2 {
			fmt.Println("Usage: /create <game_name>")
			return true
		}
		s.send(protocol.Packet{Type: protocol.CreateGame, GameName: fields[1]})
	case "/join":
		if len(fields) != 2 {
			fmt.Println("Usage: /join <game_name>")
			return true
		}
		s.send(protocol.Packet{Type: protocol.JoinGame, GameName: fields[1]})
	case "/list":
		s.send(protocol.Packet{Type: protocol.GetGameList})
	case "/stats":
		s.send(protocol.Packet{Type: protocol.GetStats})
	case "/shoot":
		x, y, err := parseShot(fields)
		if err != nil {
			fmt.Println(err)
			return true
		}
		s.send(protocol.Packet{Type: protocol.Shoot, X: x, Y: y})
	case "/leave":
		s.send(protocol.Packet{Type: protocol.LeaveGame})
	case "/help":
		if s.inGame.Load() {
			s.printGameMenu()
		} else {
			s.printMainMenu()
		}
	case "/quit":
		s.send(protocol.Packet{Type: protocol.Logout})
		return false
	default:
		fmt.Println("Unknown command. Type /help for the command list.")
	}
	return true
}

func parseShot(fields []string) (int, int, error) {
	if len(fields) != 3 {
		return 0, 0, fmt.Errorf("Usage: /shoot <x> <y> (0-9)")
	}
	x, errX := strconv.Atoi(fields[1])
	y, errY := strconv.Atoi(fields[2])
	if errX != nil || errY != nil || x < 0 || x > 9 || y < 0 || y > 9 {
		return 0, 0, fmt.Errorf("Coordinates must be numbers in 0-9")
	}
	return x, y, nil
}

// send delivers one request to the server's well-known channel. The
// server not being reachable is reported but not fatal to the session.
func (s *Session) send(pkt protocol.Packet) {
	pkt.Sender = s.cfg.Login

	frame, err := pkt.Encode()
	if err != nil {
		fmt.Printf("[Error] %v\n", err)
		return
	}

	out := channel.New(channel.ServerPath(s.cfg.PipeDir))
	if err := out.OpenWrite(); err != nil {
		fmt.Println("[Error] Server not available (not running).")
		return
	}
	defer func() { _ = out.Close() }()

	if err := out.Send(frame); err != nil {
		fmt.Printf("[Error] Could not send to server: %v\n", err)
	}
}

// listen prints asynchronous notifications until the session ends
func (s *Session) listen() {
	frame := make([]byte, protocol.FrameSize)
	for s.running.Load() {
		if err := s.inbound.Receive(frame); err != nil {
			return
		}
		pkt, err := protocol.Decode(frame)
		if err != nil {
			continue
		}
		s.display(pkt)
	}
}

func (s *Session) display(pkt protocol.Packet) {
	switch pkt.Type {
	case protocol.SrvMsg:
		fmt.Printf("\n[SERVER]: %s\n> ", pkt.Payload)
	case protocol.SrvGameList, protocol.SrvStats, protocol.SrvBoard:
		fmt.Printf("\n%s\n> ", pkt.Payload)
	case protocol.SrvGameCreated:
		fmt.Printf("\n[GAME]: %s\n> ", pkt.Payload)
	case protocol.SrvGameStart:
		s.inGame.Store(true)
		fmt.Printf("\n[GAME]: GAME HAS BEEN STARTED! Opponent: %s\n", pkt.Payload)
		fmt.Println("[GAME]: Your ships are automatically placed.")
		fmt.Println("[GAME]: Enter '/shoot X Y' (0-9)")
		fmt.Print("> ")
	case protocol.SrvShotResult:
		fmt.Printf("\n[RESULT]: %s (%d, %d)\n> ", pkt.Payload, pkt.X, pkt.Y)
	case protocol.SrvGameOver:
		s.inGame.Store(false)
		fmt.Println("\n\n=======================================")
		fmt.Println("               GAME OVER")
		fmt.Println("=======================================")
		fmt.Println(pkt.Payload)
		fmt.Println("=======================================")
		s.printMainMenu()
	}
}

func (s *Session) printMainMenu() {
	fmt.Println("\nMain Menu")
	fmt.Println("Commands:")
	fmt.Println("  /create <name>   - Create new game")
	fmt.Println("  /join <name>     - Join existing game")
	fmt.Println("  /list            - Show available games")
	fmt.Println("  /stats           - Show your statistics")
	fmt.Println("  /quit            - Quit")
	fmt.Print("> ")
}

func (s *Session) printGameMenu() {
	fmt.Println("\nGame Menu")
	fmt.Println("Commands:")
	fmt.Println("  /shoot <x> <y>   - Make a shot (0-9)")
	fmt.Println("  /leave           - Leave current game")
	fmt.Print("> ")
}

func (s *Session) cleanup() {
	s.running.Store(false)
	_ = s.inbound.Close()
	_ = s.inbound.Remove()
}
