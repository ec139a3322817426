// Package register installs the running binary as an MCP server entry in
// a client configuration file, either per-project (.mcp.json) or per-user
// (~/.claude.json).
package register

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

type serverEntry struct {
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

// Run executes the register subcommand. serverName is the MCP server name
// (e.g. "compiledb") and args is everything after "register" on the
// command line.
func Run(serverName string, args []string) error {
	scope, directory, serverArgs, err := parseArgs(args)
	if err != nil {
		return err
	}

	binaryPath, err := selfPath()
	if err != nil {
		return fmt.Errorf("detecting binary path: %w", err)
	}

	path, err := configPath(scope, directory)
	if err != nil {
		return err
	}

	if err := upsertEntry(path, serverName, commandFor(binaryPath, serverArgs)); err != nil {
		return err
	}

	fmt.Printf("Registered %q in %s\n", serverName, path)
	return nil
}

// Usage returns the help text for the register subcommand.
func Usage() string {
	binaryName := filepath.Base(os.Args[0])
	return fmt.Sprintf(`Usage:
  %[1]s register project [directory]  # → <directory>/.mcp.json (default: .)
  %[1]s register user                 # → ~/.claude.json
  %[1]s register project . -- --flag  # forward args to server
  %[1]s register user -- --flag       # forward args to server
`, binaryName)
}

// DeriveServerName extracts a server name from a binary path by stripping
// .exe and -mcp suffixes.
func DeriveServerName(binaryPath string) string {
	name := filepath.Base(binaryPath)
	name = strings.TrimSuffix(name, ".exe")
	name = strings.TrimSuffix(name, "-mcp")
	return name
}

// parseArgs splits the subcommand arguments into scope, target directory
// (project scope only), and args to forward to the server after "--".
func parseArgs(args []string) (scope string, directory string, serverArgs []string, err error) {
	if len(args) == 0 {
		return "", "", nil, fmt.Errorf("missing scope")
	}

	scope = args[0]
	if scope != "project" && scope != "user" {
		return "", "", nil, fmt.Errorf("unknown scope %q (must be \"project\" or \"user\")", scope)
	}

	rest := args[1:]
	directory = "."
	for i, arg := range rest {
		if arg == "--" {
			serverArgs = rest[i+1:]
			break
		}
		if scope == "project" && i == 0 {
			directory = arg
		}
	}
	return scope, directory, serverArgs, nil
}

func selfPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(exe)
}

func configPath(scope string, directory string) (string, error) {
	if scope == "project" {
		absDir, err := filepath.Abs(directory)
		if err != nil {
			return "", fmt.Errorf("resolving directory %s: %w", directory, err)
		}
		return filepath.Join(absDir, ".mcp.json"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, ".claude.json"), nil
}

// commandFor builds the config entry launching binaryPath. Windows MCP
// clients need the binary wrapped in a cmd /C invocation.
func commandFor(binaryPath string, serverArgs []string) serverEntry {
	if runtime.GOOS == "windows" {
		return serverEntry{
			Command: "cmd",
			Args:    append([]string{"/C", binaryPath}, serverArgs...),
		}
	}
	return serverEntry{Command: binaryPath, Args: serverArgs}
}

// upsertEntry adds or replaces the named server in the config file,
// leaving every other key untouched. The write is atomic: temp file in
// the same directory, then rename.
func upsertEntry(configPath string, serverName string, entry serverEntry) error {
	config := map[string]json.RawMessage{}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("parsing existing config %s: %w", configPath, err)
		}
	}

	servers := map[string]json.RawMessage{}
	if raw, ok := config["mcpServers"]; ok {
		if err := json.Unmarshal(raw, &servers); err != nil {
			return fmt.Errorf("mcpServers in %s is not an object: %w", configPath, err)
		}
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling server entry: %w", err)
	}
	servers[serverName] = encoded

	if config["mcpServers"], err = json.Marshal(servers); err != nil {
		return fmt.Errorf("marshaling mcpServers: %w", err)
	}

	output, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	output = append(output, '\n')

	tmpFile, err := os.CreateTemp(filepath.Dir(configPath), ".mcp-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(output); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file %s: %w", tmpPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming %s to %s: %w", tmpPath, configPath, err)
	}
	return nil
}
