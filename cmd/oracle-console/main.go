// Command oracle-console is an interactive REPL for the parser and executor:
// load a game-state snapshot, feed it Oracle text one card at a time, and
// watch the applied/skipped ledger and resulting state render to the
// terminal.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cardforge/oracle-engine/internal/httpapi"
)

const cliVersion = "1.0.0"

type console struct {
	state httpapi.GameState
	ui    *UI
}

func main() {
	fmt.Printf("oracle-console v%s\n", cliVersion)
	fmt.Println("Type 'help' for available commands, 'quit' to exit.")
	fmt.Println()

	c := &console{
		state: newEmptyState(),
		ui:    NewUI(),
	}

	if len(os.Args) > 1 {
		if err := c.load(os.Args[1]); err != nil {
			fmt.Println(c.ui.RenderError(err))
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		if !c.dispatch(strings.TrimSpace(scanner.Text())) {
			break
		}
		fmt.Print("> ")
	}
}

func newEmptyState() httpapi.GameState {
	return httpapi.GameState{
		Players: []httpapi.Player{
			{ID: "p1", Life: 20},
			{ID: "p2", Life: 20},
		},
		TurnNumber: 1,
		TurnPlayer: "p1",
	}
}

// dispatch runs one command line and returns false when the REPL should
// stop.
func (c *console) dispatch(line string) bool {
	if line == "" {
		return true
	}
	fields := strings.SplitN(line, " ", 2)
	cmd := fields[0]
	var rest string
	if len(fields) > 1 {
		rest = fields[1]
	}

	switch cmd {
	case "help", "h":
		c.showHelp()
	case "quit", "exit", "q":
		fmt.Println("bye")
		return false
	case "state", "s":
		fmt.Println(c.ui.RenderState(c.state))
	case "load":
		if err := c.load(strings.TrimSpace(rest)); err != nil {
			fmt.Println(c.ui.RenderError(err))
		} else {
			fmt.Println("loaded", rest)
		}
	case "save":
		if err := c.save(strings.TrimSpace(rest)); err != nil {
			fmt.Println(c.ui.RenderError(err))
		} else {
			fmt.Println("saved", rest)
		}
	case "apply":
		c.applyCard(rest)
	default:
		fmt.Printf("unknown command %q, type 'help'\n", cmd)
	}
	return true
}

func (c *console) showHelp() {
	fmt.Println(`commands:
  help                                             show this message
  state                                            print the current game state
  load <file>                                      load a game-state JSON snapshot
  save <file>                                      write the current state to a JSON file
  apply <controllerId> :: <cardName> :: <text>     parse and apply one card's Oracle text
  quit                                              exit`)
}

func (c *console) load(path string) error {
	if path == "" {
		return fmt.Errorf("usage: load <file>")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var s httpapi.GameState
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	c.state = s
	return nil
}

func (c *console) save(path string) error {
	if path == "" {
		return fmt.Errorf("usage: save <file>")
	}
	raw, err := json.MarshalIndent(c.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// applyCard parses "<controllerId> :: <cardName> :: <oracle text>" and runs
// it against the console's current state.
func (c *console) applyCard(args string) {
	parts := strings.SplitN(args, "::", 3)
	if len(parts) != 3 {
		fmt.Println(c.ui.RenderError(fmt.Errorf("usage: apply <controllerId> :: <cardName> :: <oracle text>")))
		return
	}
	controllerID := strings.TrimSpace(parts[0])
	cardName := strings.TrimSpace(parts[1])
	text := strings.TrimSpace(parts[2])
	if controllerID == "" {
		fmt.Println(c.ui.RenderError(fmt.Errorf("controllerId is required")))
		return
	}

	req := httpapi.ApplyRequest{
		CardName:     cardName,
		OracleText:   text,
		State:        c.state,
		ControllerID: controllerID,
	}
	resp, err := httpapi.RunApply(req)
	if err != nil {
		fmt.Println(c.ui.RenderError(err))
		return
	}
	c.state = resp.State
	fmt.Println(c.ui.RenderLedger(resp))
	fmt.Println(c.ui.RenderState(c.state))
}
