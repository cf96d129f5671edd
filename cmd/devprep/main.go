// Package main provides the CLI entrypoint for devprep.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"devprep/internal/bank"
	"devprep/internal/config"
	"devprep/internal/model"
	"devprep/internal/report"
	"devprep/internal/session"
	"devprep/internal/tui"
)

const (
	defaultCount          = 5
	defaultInterviewCount = 15
)

var (
	practiceBank       string
	practiceDifficulty string
	practiceCount      int
	practiceInterview  bool
	practiceTimeLimit  int
	practiceExport     string
	practiceNoShuffle  bool

	interviewBank      string
	interviewCount     int
	interviewTimeLimit int
	interviewExport    string

	topicsBank string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "devprep [topic]",
		Short:         "Terminal interview-prep quiz trainer",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceBank, "bank", config.DefaultBankPath(), "question bank file (.json, .yaml, or .db)")
	rootCmd.Flags().StringVarP(&practiceDifficulty, "difficulty", "d", "", "difficulty filter (easy, medium, hard)")
	rootCmd.Flags().IntVarP(&practiceCount, "count", "c", defaultCount, "number of questions")
	rootCmd.Flags().BoolVarP(&practiceInterview, "interview-mode", "i", false, "withhold feedback until the session ends")
	rootCmd.Flags().IntVar(&practiceTimeLimit, "time-limit", 0, "session time limit in seconds (0 = none)")
	rootCmd.Flags().StringVar(&practiceExport, "export", "", "export results to a JSON file")
	rootCmd.Flags().BoolVar(&practiceNoShuffle, "no-shuffle", false, "present options in bank order")

	rootCmd.AddCommand(newInterviewCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "bank", &practiceBank, fileCfg.Practice.Bank)
	applyStringConfig(cmd, "difficulty", &practiceDifficulty, fileCfg.Practice.Difficulty)
	applyIntConfig(cmd, "count", &practiceCount, fileCfg.Practice.Count)
	applyBoolConfig(cmd, "interview-mode", &practiceInterview, fileCfg.Practice.InterviewMode)
	applyIntConfig(cmd, "time-limit", &practiceTimeLimit, fileCfg.Practice.TimeLimit)

	shuffle := !practiceNoShuffle
	if fileCfg.Practice.Shuffle != nil && !cmd.Flags().Changed("no-shuffle") {
		shuffle = *fileCfg.Practice.Shuffle
	}

	b, err := bank.Load(practiceBank)
	if err != nil {
		return bankLoadError(practiceBank, err)
	}

	topic := ""
	if len(args) > 0 {
		topic = args[0]
	}
	if topic == "" {
		topic, err = promptTopic(b)
		if err != nil {
			return err
		}
	} else if !b.HasTopic(topic) {
		return fmt.Errorf("%w: %q (run: devprep topics)", session.ErrUnknownTopic, topic)
	}

	opts := model.SessionOptions{
		Topic:         topic,
		Difficulty:    practiceDifficulty,
		Count:         practiceCount,
		InterviewMode: practiceInterview,
		TimeLimit:     time.Duration(practiceTimeLimit) * time.Second,
		Shuffle:       shuffle,
	}
	if err := validateOptions(opts); err != nil {
		return err
	}

	engine := session.New(b, bank.NewSampler(), opts)
	sess, err := engine.Start()
	if err != nil {
		return err
	}

	fmt.Printf("Starting practice: %s\n", strings.ToUpper(topic))
	if opts.Difficulty != "" {
		fmt.Printf("Difficulty: %s\n", opts.Difficulty)
	}
	if sess.Reduced() {
		logErrf("Adjusted to %d questions (all available)\n", len(sess.Questions))
	}
	fmt.Printf("Questions: %d\n", len(sess.Questions))

	return runQuiz(engine, practiceExport)
}

func newInterviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Full interview simulation with mixed topics",
		Args:  cobra.NoArgs,
		RunE:  runInterviewCmd,
	}
	cmd.Flags().StringVar(&interviewBank, "bank", config.DefaultBankPath(), "question bank file (.json, .yaml, or .db)")
	cmd.Flags().IntVarP(&interviewCount, "count", "c", defaultInterviewCount, "number of questions")
	cmd.Flags().IntVar(&interviewTimeLimit, "time-limit", 0, "session time limit in seconds (0 = none)")
	cmd.Flags().StringVar(&interviewExport, "export", "", "export results to a JSON file")
	return cmd
}

func runInterviewCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "bank", &interviewBank, fileCfg.Practice.Bank)

	b, err := bank.Load(interviewBank)
	if err != nil {
		return bankLoadError(interviewBank, err)
	}

	opts := model.SessionOptions{
		Count:         interviewCount,
		InterviewMode: true,
		TimeLimit:     time.Duration(interviewTimeLimit) * time.Second,
		Shuffle:       true,
	}
	if err := validateOptions(opts); err != nil {
		return err
	}

	engine := session.New(b, bank.NewSampler(), opts)
	sess, err := engine.Start()
	if err != nil {
		return err
	}

	fmt.Println("INTERVIEW SIMULATION")
	if sess.Reduced() {
		logErrf("Adjusted to %d questions (all available)\n", len(sess.Questions))
	}
	fmt.Printf("Questions: %d\n", len(sess.Questions))
	if opts.TimeLimit > 0 {
		fmt.Printf("Time limit: %s\n", opts.TimeLimit)
	}
	fmt.Println("\nQuestion distribution:")
	for _, info := range topicDistribution(sess.Questions) {
		fmt.Printf("  %s: %d\n", info.Topic, info.Total)
	}

	ok, err := confirm("\nReady to begin your interview? [Y/n] ")
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return runQuiz(engine, interviewExport)
}

func runQuiz(engine *session.Engine, exportPath string) error {
	quizModel := tui.NewModel(engine, exportPath)
	program := tea.NewProgram(quizModel, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run quiz: %w", err)
	}
	final, ok := finalModel.(*tui.Model)
	if !ok || final.Aborted {
		return nil
	}
	// The alt screen is gone by now; echo the summary to stdout so it
	// survives the session.
	if summary, done := final.Summary(); done {
		if err := report.Render(os.Stdout, summary); err != nil {
			return fmt.Errorf("failed to render summary: %w", err)
		}
	}
	return nil
}

func newTopicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List question bank topics",
		Args:  cobra.NoArgs,
		RunE:  runTopicsCmd,
	}
	cmd.Flags().StringVar(&topicsBank, "bank", config.DefaultBankPath(), "question bank file (.json, .yaml, or .db)")
	return cmd
}

func runTopicsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "bank", &topicsBank, fileCfg.Practice.Bank)

	b, err := bank.Load(topicsBank)
	if err != nil {
		return bankLoadError(topicsBank, err)
	}
	return report.RenderTopics(cmd.OutOrStdout(), b.ListTopics())
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func promptTopic(b *bank.Bank) (string, error) {
	fmt.Println("Available topics:")
	for _, info := range b.ListTopics() {
		fmt.Printf("  %s (%d questions)\n", info.Topic, info.Total)
	}
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("\nSelect a topic: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read topic: %w", err)
		}
		topic := strings.TrimSpace(line)
		if topic != "" && b.HasTopic(topic) {
			return topic, nil
		}
		logErrf("Unknown topic %q\n", topic)
	}
}

func confirm(prompt string) (bool, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "" || answer == "y" || answer == "yes", nil
}

func topicDistribution(questions []model.Question) []model.TopicInfo {
	counts := map[string]int{}
	var order []string
	for _, q := range questions {
		if _, ok := counts[q.Topic]; !ok {
			order = append(order, q.Topic)
		}
		counts[q.Topic]++
	}
	out := make([]model.TopicInfo, 0, len(order))
	for _, topic := range order {
		out = append(out, model.TopicInfo{Topic: topic, Total: counts[topic]})
	}
	return out
}

func validateOptions(opts model.SessionOptions) error {
	if opts.Count <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	if opts.TimeLimit < 0 {
		return fmt.Errorf("--time-limit must be >= 0")
	}
	switch opts.Difficulty {
	case "", model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		return fmt.Errorf("--difficulty must be easy, medium, or hard")
	}
	return nil
}

func bankLoadError(path string, err error) error {
	var validationErr *bank.ValidationError
	if errors.As(err, &validationErr) {
		return err
	}
	lines := []string{
		fmt.Sprintf("%v", err),
		fmt.Sprintf("expected question bank at: %s", path),
		"Point --bank at a questions file (.json, .yaml, or .db)",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# devprep configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# bank = %q
# count = %d              # Questions per session
# difficulty = "medium"   # Default difficulty filter
# interview-mode = false  # Withhold feedback until the session ends
# time-limit = 0          # Session time limit in seconds (0 = none)
# shuffle = true          # Shuffle answer options per question
`,
		config.DefaultBankPath(),
		defaultCount,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
