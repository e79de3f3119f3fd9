package client

import (
	"context"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/eigen-library/internal/adapter"
	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/internal/tui"
	"github.com/MKhiriev/eigen-library/models"
)

const usage = `usage: eigen-client <command> [flags]

commands:
  books                              list books and available copies
  members                            list members and borrowed counts
  borrowings -member CODE            list books a member holds
  borrow     -member CODE -book CODE lend a book to a member
  return     -member CODE -book CODE give a borrowed book back
  version                            print the API version
  tui                                browse books and members interactively
`

type App struct {
	adapter adapter.ServerAdapter
	out     io.Writer
	errOut  io.Writer

	// newInteractive builds the terminal UI started by the tui command.
	newInteractive func(adapter.ServerAdapter, func(error) string, *logger.Logger) Interactive

	logger *logger.Logger
}

func NewApp(serverAdapter adapter.ServerAdapter, out, errOut io.Writer, logger *logger.Logger) *App {
	return &App{
		adapter:        serverAdapter,
		out:            out,
		errOut:         errOut,
		newInteractive: newTerminalUI,
		logger:         logger,
	}
}

func newTerminalUI(serverAdapter adapter.ServerAdapter, humanize func(error) string, log *logger.Logger) Interactive {
	return tui.New(serverAdapter, humanize, log)
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.errOut, usage)
		return ErrNoCommand
	}

	command, rest := args[0], args[1:]
	a.logger.Debug().Str("command", command).Strs("args", rest).Msg("running command")

	switch command {
	case "books":
		return a.listBooks(ctx)
	case "members":
		return a.listMembers(ctx)
	case "borrowings":
		return a.listBorrowings(ctx, rest)
	case "borrow":
		return a.borrow(ctx, rest)
	case "return":
		return a.returnBook(ctx, rest)
	case "version":
		return a.version(ctx)
	case "tui":
		return a.newInteractive(a.adapter, HumanizeError, a.logger).Run(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.errOut, usage)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

func (a *App) listBooks(ctx context.Context) error {
	books, err := a.adapter.ListBooks(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tTITLE\tAUTHOR\tSTOCK\tAVAILABLE")
	for _, b := range books {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", b.Code, b.Title, b.Author, b.Stock, b.Available)
	}
	return tw.Flush()
}

func (a *App) listMembers(ctx context.Context) error {
	members, err := a.adapter.ListMembers(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tBORROWED\tPENALTY UNTIL")
	for _, m := range members {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", m.Code, m.Name, m.BorrowedBooks, formatPenalty(m))
	}
	return tw.Flush()
}

func (a *App) listBorrowings(ctx context.Context, args []string) error {
	fs, memberCode, _ := a.borrowFlags("borrowings", false)
	if err := a.parse(fs, args, map[string]*string{"member": memberCode}); err != nil {
		return err
	}

	borrowings, err := a.adapter.ListMemberBorrowings(ctx, *memberCode)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tBOOK\tBORROWED AT")
	for _, b := range borrowings {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.ID, b.BookCode, b.BorrowedAt.Format(time.DateTime))
	}
	return tw.Flush()
}

func (a *App) borrow(ctx context.Context, args []string) error {
	fs, memberCode, bookCode := a.borrowFlags("borrow", true)
	if err := a.parse(fs, args, map[string]*string{"member": memberCode, "book": bookCode}); err != nil {
		return err
	}

	borrowing, err := a.adapter.Borrow(ctx, models.BorrowRequest{MemberCode: *memberCode, BookCode: *bookCode})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s borrowed %s at %s (id %s)\n",
		borrowing.MemberCode, borrowing.BookCode, borrowing.BorrowedAt.Format(time.DateTime), borrowing.ID)
	return nil
}

func (a *App) returnBook(ctx context.Context, args []string) error {
	fs, memberCode, bookCode := a.borrowFlags("return", true)
	if err := a.parse(fs, args, map[string]*string{"member": memberCode, "book": bookCode}); err != nil {
		return err
	}

	result, err := a.adapter.Return(ctx, models.ReturnRequest{MemberCode: *memberCode, BookCode: *bookCode})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s returned %s\n", result.Borrowing.MemberCode, result.Borrowing.BookCode)
	if result.Late && result.PenaltyUntil != nil {
		fmt.Fprintf(a.out, "returned late: member is penalized until %s\n", result.PenaltyUntil.Format(time.DateTime))
	}
	return nil
}

func (a *App) version(ctx context.Context) error {
	version, err := a.adapter.Version(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "API version: %s\n", version)
	return nil
}

func (a *App) borrowFlags(name string, withBook bool) (*flag.FlagSet, *string, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)

	memberCode := fs.String("member", "", "member code, e.g. M001")
	var bookCode *string
	if withBook {
		bookCode = fs.String("book", "", "book code, e.g. JK-45")
	}
	return fs, memberCode, bookCode
}

// parse parses args and checks that every flag in required got a value.
func (a *App) parse(fs *flag.FlagSet, args []string, required map[string]*string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}

	var missing []string
	for name, value := range required {
		if strings.TrimSpace(*value) == "" {
			missing = append(missing, "-"+name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("%w: %s %s", ErrMissingFlag, fs.Name(), strings.Join(missing, ", "))
	}
	return nil
}

func formatPenalty(m models.Member) string {
	if !m.Penalized || m.PenaltyUntil == nil {
		return "-"
	}
	return m.PenaltyUntil.Format(time.DateTime)
}
