// Command slsend sends a message through the SocketLabs Injection API.
//
// Credentials and client settings come from a YAML file (-config) or from
// SOCKETLABS_* environment variables, optionally loaded from a .env file.
//
//	slsend -from "Ann <ann@example.com>" -to bob@example.com -subject Hi -text Hello
//	slsend -bulk -to "Bob <bob@example.com>" -to carol@example.com -merge Promo=SPRING \
//	    -subject "Hi %%RecipientName%%" -html "<p>Code: %%Promo%%</p>" -from ann@example.com
//
// The send result is written to stdout as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/mail"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	socketlabs "github.com/socketlabs/socketlabs-go"
)

// Config holds the I/O streams used by the command.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config wired to the process streams.
func DefaultConfig() *Config {
	return &Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// ClientInterface is the subset of *socketlabs.Client used by the command.
type ClientInterface interface {
	Send(ctx context.Context, msg socketlabs.Message) (*socketlabs.SendResponse, error)
}

var clientFactory = func(cfg *socketlabs.Config, logger zerolog.Logger) (ClientInterface, error) {
	return cfg.NewClient(socketlabs.WithLogger(logger))
}

var exitFunc = os.Exit

// SendOutput is the JSON written to stdout after a send.
type SendOutput struct {
	Result             string          `json:"result"`
	Message            string          `json:"message"`
	TransactionReceipt string          `json:"transactionReceipt,omitempty"`
	AddressResults     []AddressOutput `json:"addressResults,omitempty"`
}

// AddressOutput reports a recipient the server or validator rejected.
type AddressOutput struct {
	EmailAddress string `json:"emailAddress"`
	Accepted     bool   `json:"accepted"`
	ErrorCode    string `json:"errorCode,omitempty"`
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type sendFlags struct {
	configPath string
	envFile    string
	bulk       bool
	from       string
	replyTo    string
	to         stringList
	cc         stringList
	bcc        stringList
	subject    string
	text       string
	html       string
	template   int
	mailingID  string
	messageID  string
	merge      stringList
	attach     stringList
	retries    int
	timeout    time.Duration
	logLevel   string
}

func parseFlags(args []string, stderr io.Writer) (*sendFlags, error) {
	f := &sendFlags{}
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.configPath, "config", "", "YAML config file (default: environment only)")
	fs.StringVar(&f.envFile, "env", ".env", "dotenv file loaded before reading the environment")
	fs.BoolVar(&f.bulk, "bulk", false, "send a bulk message with one merge row per -to recipient")
	fs.StringVar(&f.from, "from", "", "sender address")
	fs.StringVar(&f.replyTo, "reply-to", "", "reply-to address")
	fs.Var(&f.to, "to", "recipient address (repeatable)")
	fs.Var(&f.cc, "cc", "cc address (repeatable, basic only)")
	fs.Var(&f.bcc, "bcc", "bcc address (repeatable, basic only)")
	fs.StringVar(&f.subject, "subject", "", "message subject")
	fs.StringVar(&f.text, "text", "", "plain text body")
	fs.StringVar(&f.html, "html", "", "HTML body")
	fs.IntVar(&f.template, "template", 0, "API template ID used instead of a body")
	fs.StringVar(&f.mailingID, "mailing-id", "", "mailing ID")
	fs.StringVar(&f.messageID, "message-id", "", "message ID")
	fs.Var(&f.merge, "merge", "global merge field as key=value (repeatable, bulk only)")
	fs.Var(&f.attach, "attach", "file to attach (repeatable)")
	fs.IntVar(&f.retries, "retries", -1, "retry count, overrides the configured value")
	fs.DurationVar(&f.timeout, "timeout", 0, "per-attempt timeout, overrides the configured value")
	fs.StringVar(&f.logLevel, "log-level", "", "log level, overrides the configured value")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	if len(f.to) == 0 {
		return nil, errors.New("usage: slsend -from <address> -to <address> [flags]")
	}
	return f, nil
}

func run(args []string, cfg *Config) error {
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	f, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if f.envFile != "" {
		if err := godotenv.Load(f.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load env file: %w", err)
		}
	}

	slCfg, err := loadConfig(f)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, err := slCfg.Level()
	if err != nil {
		return err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()

	msg, err := buildMessage(f)
	if err != nil {
		return err
	}

	client, err := clientFactory(slCfg, logger)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	resp, err := client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}

	if err := json.NewEncoder(cfg.Stdout).Encode(convertResponse(resp)); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	if resp.Result != socketlabs.Success {
		return fmt.Errorf("send failed: %s", resp)
	}
	return nil
}

func loadConfig(f *sendFlags) (*socketlabs.Config, error) {
	var (
		cfg *socketlabs.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = socketlabs.LoadConfig(f.configPath)
	} else {
		cfg, err = socketlabs.LoadConfigFromEnv()
	}
	if err != nil {
		return nil, err
	}

	if f.retries >= 0 {
		cfg.Retries = f.retries
	}
	if f.timeout > 0 {
		cfg.RequestTimeout = int(f.timeout / time.Second)
	}
	if f.logLevel != "" {
		cfg.LogLevel = strings.ToLower(f.logLevel)
	}
	return cfg, nil
}

func buildMessage(f *sendFlags) (socketlabs.Message, error) {
	var base socketlabs.MessageBase
	base.Subject = f.subject
	base.PlainTextBody = f.text
	base.HTMLBody = f.html
	base.APITemplate = f.template
	base.MailingID = f.mailingID
	base.MessageID = f.messageID

	if f.from != "" {
		base.From = parseAddress(f.from)
	}
	if f.replyTo != "" {
		replyTo := parseAddress(f.replyTo)
		base.ReplyTo = &replyTo
	}

	for _, path := range f.attach {
		a, err := socketlabs.NewAttachmentFromFile(path)
		if err != nil {
			return nil, err
		}
		base.AddAttachment(a)
	}

	if f.bulk {
		msg := &socketlabs.BulkMessage{MessageBase: base}
		for _, to := range f.to {
			addr := parseAddress(to)
			msg.AddToRecipient(addr.Email, addr.FriendlyName)
		}
		for _, kv := range f.merge {
			key, value, ok := strings.Cut(kv, "=")
			if !ok {
				return nil, fmt.Errorf("invalid merge field %q: expected key=value", kv)
			}
			msg.AddGlobalMergeData(key, value)
		}
		return msg, nil
	}

	if len(f.merge) > 0 {
		return nil, errors.New("-merge requires -bulk")
	}

	msg := &socketlabs.BasicMessage{MessageBase: base}
	for _, to := range f.to {
		msg.To = append(msg.To, parseAddress(to))
	}
	for _, cc := range f.cc {
		msg.Cc = append(msg.Cc, parseAddress(cc))
	}
	for _, bcc := range f.bcc {
		msg.Bcc = append(msg.Bcc, parseAddress(bcc))
	}
	return msg, nil
}

// parseAddress accepts "Name <email>" or a bare address. Anything that does
// not parse is kept verbatim so validation reports it.
func parseAddress(s string) socketlabs.EmailAddress {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return socketlabs.EmailAddress{Email: strings.TrimSpace(s)}
	}
	return socketlabs.EmailAddress{Email: addr.Address, FriendlyName: addr.Name}
}

func convertResponse(resp *socketlabs.SendResponse) SendOutput {
	out := SendOutput{
		Result:             resp.Result.Name(),
		Message:            resp.ResponseMessage(),
		TransactionReceipt: resp.TransactionReceipt,
	}
	for _, ar := range resp.AddressResults {
		out.AddressResults = append(out.AddressResults, AddressOutput{
			EmailAddress: ar.EmailAddress,
			Accepted:     ar.Accepted,
			ErrorCode:    ar.ErrorCode,
		})
	}
	return out
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	exitFunc(1)
}
