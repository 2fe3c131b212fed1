package command

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"github.com/sqlite-riir/sqlite-riir/internal/demodb"
	"github.com/sqlite-riir/sqlite-riir/internal/engine"
)

const prompt = "sqlite-riir>> "

// ShellCommand runs the interactive read-only prompt: open a database
// (a path argument, or the built-in demo file), then read lines until
// EOF, dispatching dot-commands and SELECT statements.
type ShellCommand struct {
	ShutDownCh <-chan struct{}
}

func (c *ShellCommand) Help() string {
	helpText := `
Usage: sqlite-riir shell [path]

Opens path (a SQLite format-3 file) or, with no argument, a small
built-in demo database, and starts an interactive prompt.
`
	return strings.TrimSpace(helpText)
}

func (c *ShellCommand) Synopsis() string {
	return "Opens a SQLite database file and starts a read-only prompt"
}

func (c *ShellCommand) Run(args []string) int {
	log := logrus.StandardLogger()

	eng, err := c.open(args, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		return 1
	}
	defer eng.Close()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := historyFilePath()
	os.MkdirAll(filepath.Dir(historyPath), 0o755)
	if f, err := os.Open(historyPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	for {
		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			fmt.Println("^C")
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		c.dispatch(eng, input)
	}

	if f, err := os.Create(historyPath); err == nil {
		line.WriteHistory(f)
		f.Close()
	}

	return 0
}

func (c *ShellCommand) open(args []string, log *logrus.Logger) (*engine.Engine, error) {
	if len(args) > 0 && args[0] != "" {
		return engine.Open(args[0], log)
	}
	return engine.OpenBytes(demodb.Bytes(), log)
}

func (c *ShellCommand) dispatch(eng *engine.Engine, input string) {
	if strings.HasPrefix(input, ".") {
		c.dotCommand(eng, input)
		return
	}

	rows, err := eng.ExecuteSelect(input)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	for _, row := range rows {
		vals := make([]interface{}, len(row.Fields))
		for i, f := range row.Fields {
			vals[i] = f.Data
		}
		fmt.Printf("%d: %v\n", row.RowID, vals)
	}
}

func (c *ShellCommand) dotCommand(eng *engine.Engine, input string) {
	switch input {
	case ".debug":
		if err := eng.DebugPages(os.Stdout); err != nil {
			fmt.Println(err.Error())
		}
	case ".tables":
		for _, line := range eng.TableDescriptions() {
			fmt.Println(line)
		}
	default:
		fmt.Printf("Unrecognized debug command: %s\n", input)
	}
}

func historyFilePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "sqlite-riir", "history")
}
