package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	logx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/pkg/logger"
)

var threadID string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the sales assistant",
	Long: `Start an interactive chat. Each line you type is sent to the assistant and its
reply is printed after "AI:". Type /reset to forget the conversation so far;
an empty line ends the session.

Examples:
  salesbot chat                       # new conversation
  salesbot chat --thread customer-42  # continue a stored conversation`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, repo, err := openCatalog(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		svc, err := newConversation(ctx, repo)
		if err != nil {
			return err
		}

		id := strings.TrimSpace(threadID)
		if id == "" {
			id = uuid.NewString()
		}
		logger := logx.Component("chat")
		logger.Info().Str("thread_id", id).Msg("chat started")

		return runREPL(ctx, os.Stdin, cmd.OutOrStdout(), svc, id)
	},
}

func init() {
	chatCmd.Flags().StringVar(&threadID, "thread", "", "Conversation thread id (default: a new UUID)")
}

const resetCommand = "/reset"

type messageHandler interface {
	HandleMessage(ctx context.Context, threadID string, text string) (string, error)
	Reset(ctx context.Context, threadID string) error
}

// runREPL reads one message per line until an empty line or EOF. A failed
// turn ends the session with the error.
func runREPL(ctx context.Context, in io.Reader, out io.Writer, handler messageHandler, threadID string) error {
	fmt.Fprintln(out, bannerStyle.Render("Phone sales assistant")+" "+mutedStyle.Render("(/reset to start over, empty line to quit, thread "+threadID+")"))

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(out, userLabel.Render("You:")+" ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			fmt.Fprintln(out, mutedStyle.Render("Goodbye."))
			return nil
		}
		if text == resetCommand {
			if err := handler.Reset(ctx, threadID); err != nil {
				return fmt.Errorf("reset thread: %w", err)
			}
			fmt.Fprintln(out, mutedStyle.Render("History cleared."))
			continue
		}

		reply, err := handler.HandleMessage(ctx, threadID, text)
		if err != nil {
			return fmt.Errorf("handle message: %w", err)
		}
		fmt.Fprintln(out, aiLabel.Render("AI:")+" "+reply)
	}
}
