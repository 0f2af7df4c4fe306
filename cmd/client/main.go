package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"

	"chat-session/credentials"
	"chat-session/domain"
	"chat-session/internal"
	"chat-session/presence"
	"chat-session/services"
	"chat-session/transport"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// 1. Configuration & logger
	_ = godotenv.Load()
	var config internal.ClientConfig
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	clientID := config.ClientID
	if clientID == "" {
		clientID = "chat-client-" + uuid.NewString()[:8]
	}
	identity := domain.Identity{UserID: clientID, Name: config.UserName, Email: config.UserEmail}

	// 2. Session wiring: broker-issued tokens, realtime transport, presence
	tokens := credentials.NewHTTPTokenSource(log, config.BrokerURL+"/token", os.Getenv("CHAT_SESSION_TOKEN"))
	dialer := transport.NewAblyDialer(log)
	reporter := presence.NewReporter(log, config.BrokerURL+"/notify-connection")

	svc := services.NewChatService(log,
		services.SessionConfig{ClientID: clientID, ChannelName: config.ChannelName},
		tokens, dialer,
		services.WithConnectedHook(func(ctx context.Context) {
			if err := reporter.Report(ctx, identity); err != nil {
				log.Warn("connection notification failed", "error", err)
			}
		}),
	)

	// 3. Context & signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	unsubscribeMessages := svc.Subscribe(printMessage)
	defer unsubscribeMessages()
	offState := svc.OnConnectionState(func(s domain.ConnectionState) {
		color.Gray.Printf("-- connection %s --\n", s)
	})
	defer offState()

	if err := svc.Connect(ctx); err != nil {
		return exitRuntime, fmt.Errorf("connect failed: %w", err)
	}
	defer svc.Close(context.Background())

	color.Cyan.Printf(">>> Joined %q as %s (Ctrl+C to quit, /help for commands)\n",
		config.ChannelName, clientID)

	// 4. Input loop
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			color.Gray.Println("Leaving...")
			return exitOK, nil
		case line, ok := <-lines:
			if !ok {
				return exitOK, nil
			}
			if err := handleLine(ctx, svc, config, line); err != nil {
				color.Red.Printf("! %v\n", err)
			}
		}
	}
}

func handleLine(ctx context.Context, svc *services.ChatService, config internal.ClientConfig, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	switch {
	case line == "/help":
		fmt.Println("/who            list online users")
		fmt.Println("/file <path>    send a media attachment")
		fmt.Println("/retry <id>     resend a failed message")
		return nil

	case line == "/who":
		return printOnline(ctx, config.BrokerURL+"/status")

	case strings.HasPrefix(line, "/file "):
		path := strings.TrimSpace(strings.TrimPrefix(line, "/file "))
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		attachment, err := domain.AttachmentFromFile(path, info.Size())
		if err != nil {
			return err
		}
		return send(ctx, svc, domain.OutboundMessage{Media: []domain.MediaAttachment{attachment}})

	case strings.HasPrefix(line, "/retry "):
		id := strings.TrimSpace(strings.TrimPrefix(line, "/retry "))
		_, found, err := svc.Resend(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no failed message with id %s", id)
		}
		return nil

	default:
		return send(ctx, svc, domain.OutboundMessage{Text: line})
	}
}

func send(ctx context.Context, svc *services.ChatService, draft domain.OutboundMessage) error {
	if svc.ConnectionState() != domain.StateConnected {
		return fmt.Errorf("not connected (%s), message not sent", svc.ConnectionState())
	}
	draft.Sender = domain.SenderSelf
	_, err := svc.Send(ctx, draft)
	return err
}

// printMessage renders inbound messages and outbound status updates.
func printMessage(msg domain.ChatMessage) {
	glyph := statusGlyph(msg.Status)
	body := msg.Text
	for _, m := range msg.Media {
		body += fmt.Sprintf(" [%s %s]", m.Kind, m.Name)
	}
	if msg.Sender == domain.SenderSelf {
		color.Green.Printf("[%s] me: %s %s (%s)\n", msg.Time, body, glyph, msg.ID)
	} else {
		color.Cyan.Printf("[%s] them: %s\n", msg.Time, body)
	}
}

func statusGlyph(status domain.Status) string {
	switch status {
	case domain.StatusSent:
		return "✓"
	case domain.StatusDelivered, domain.StatusRead:
		return "✓✓"
	case domain.StatusError:
		return color.Red.Render("!")
	default:
		return ""
	}
}

// printOnline renders the broker's online listing as a table.
func printOnline(ctx context.Context, endpoint string) error {
	reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status endpoint returned %d", resp.StatusCode)
	}

	var online []domain.UserStatus
	if err := json.NewDecoder(resp.Body).Decode(&online); err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"User", "Name", "Email", "Last seen"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, u := range online {
		table.Append([]string{u.UserID, u.Name, u.Email, u.LastSeen.Local().Format(time.TimeOnly)})
	}
	table.Render()
	return nil
}
