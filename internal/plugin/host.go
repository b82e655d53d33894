// Package plugin runs externally-authored lint rules in an isolated
// subprocess and folds their findings back into the shared diagnostic
// context. One fresh process per invocation; nothing survives between runs.
package plugin

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tanquar/deno-lint/internal/ast"
	"github.com/tanquar/deno-lint/internal/lint"
)

// Host drives one plugin module. It implements lint.ExternalRule: the
// module's own rule codes are discovered at runtime, so Code reports the
// descriptor path and the harvested codes land in the context via
// SetPluginCodes.
type Host struct {
	desc Descriptor
}

// NewHost wraps a descriptor. The returned host is stateless and shareable;
// every RunExternal call builds its environment from scratch.
func NewHost(desc Descriptor) *Host {
	return &Host{desc: desc}
}

func (h *Host) Code() string           { return h.desc.Path }
func (h *Host) Tags() []string         { return []string{"plugin"} }
func (h *Host) Descriptor() Descriptor { return h.desc }

// CacheFingerprint mixes the module content, the runner and the code
// selection into the result-cache key. Code alone is just the descriptor
// path, and that does not change when the module is edited in place.
func (h *Host) CacheFingerprint() []byte {
	fp := sha256.New()
	if content, err := os.ReadFile(h.desc.Path); err != nil {
		io.WriteString(fp, err.Error())
	} else {
		fp.Write(content)
	}
	for _, arg := range h.desc.Runner {
		io.WriteString(fp, "\x00")
		io.WriteString(fp, arg)
	}
	for _, code := range h.desc.Codes {
		io.WriteString(fp, "\x01")
		io.WriteString(fp, code)
	}
	return fp.Sum(nil)
}

// RunExternal executes the plugin against one program: load the sandbox,
// run the conversation to completion, tear the sandbox down. Diagnostics
// reported before a fault are kept; the returned error is recoverable and
// the caller continues with its remaining rules.
func (h *Host) RunExternal(ctx context.Context, c *lint.Context, prog *ast.Program) *lint.PluginError {
	env, perr := h.load(ctx)
	if perr != nil {
		return perr
	}
	defer env.dispose()

	hv, perr := h.invoke(ctx, env, c, prog)
	hv.fold(c)
	return perr
}

// environment is one live sandbox process plus the scratch directory
// holding its bootstrap script.
type environment struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	out    *bufio.Reader
	stderr bytes.Buffer
	dir    string
	waited bool
}

// load materializes the bootstrap and starts the runtime. Everything that
// can go wrong here is a load error.
func (h *Host) load(ctx context.Context) (*environment, *lint.PluginError) {
	dir, err := os.MkdirTemp("", "denolint-plugin-*")
	if err != nil {
		return nil, h.fail(lint.PluginLoadError, err)
	}
	bootPath := filepath.Join(dir, "bootstrap.mjs")
	if err := os.WriteFile(bootPath, bootstrapJS, 0o600); err != nil {
		os.RemoveAll(dir)
		return nil, h.fail(lint.PluginLoadError, err)
	}

	runner := h.desc.Runner
	if len(runner) == 0 {
		runner = DefaultRunner()
	}
	argv := append(slices.Clone(runner), bootPath, h.desc.Path)

	env := &environment{dir: dir}
	env.cmd = exec.CommandContext(ctx, argv[0], argv[1:]...)
	env.cmd.Stderr = &env.stderr

	stdin, err := env.cmd.StdinPipe()
	if err != nil {
		os.RemoveAll(dir)
		return nil, h.fail(lint.PluginLoadError, err)
	}
	env.stdin = stdin
	stdout, err := env.cmd.StdoutPipe()
	if err != nil {
		os.RemoveAll(dir)
		return nil, h.fail(lint.PluginLoadError, err)
	}
	env.out = bufio.NewReader(stdout)

	if err := env.cmd.Start(); err != nil {
		os.RemoveAll(dir)
		return nil, h.fail(lint.PluginLoadError, err)
	}
	return env, nil
}

// invoke runs the wire conversation until the child signals done or faults.
// The harvest is returned even on failure so partial results survive.
func (h *Host) invoke(ctx context.Context, env *environment, c *lint.Context, prog *ast.Program) (*harvest, *lint.PluginError) {
	hv := newHarvest()

	program, err := EncodeProgram(prog)
	if err != nil {
		return hv, h.fail(lint.PluginMalformedInput, err)
	}
	if err := env.send(runMsg{Op: "run", ProgramAst: program, RuleCodes: h.desc.Codes}); err != nil {
		return hv, h.fault(env, err)
	}

	for {
		line, err := env.out.ReadBytes('\n')
		if err != nil {
			if ctx.Err() != nil {
				return hv, h.fail(lint.PluginRuntimeFault, ctx.Err())
			}
			return hv, h.fault(env, fmt.Errorf("channel closed before done: %w", err))
		}
		var msg childMsg
		if err := json.Unmarshal(line, &msg); err != nil {
			return hv, h.fault(env, fmt.Errorf("unparseable message: %w", err))
		}

		switch msg.Op {
		case "register_rule_code":
			hv.register(msg.Code)
		case "report_diagnostics":
			// last write per code wins
			hv.diags[msg.Code] = msg.Diagnostics
		case "query_control_flow":
			if err := env.send(h.answerFlow(c, msg)); err != nil {
				return hv, h.fault(env, err)
			}
		case "error":
			return hv, h.fail(faultKind(msg.Stage), fmt.Errorf("%s", msg.Message))
		case "done":
			if err := env.finish(); err != nil {
				return hv, h.fault(env, err)
			}
			return hv, nil
		default:
			return hv, h.fault(env, fmt.Errorf("unknown op %q", msg.Op))
		}
	}
}

func (h *Host) answerFlow(c *lint.Context, msg childMsg) flowAnswer {
	ans := flowAnswer{Op: "control_flow", ID: msg.ID}
	if flow := c.ControlFlow(); flow != nil && msg.Span != nil {
		if meta, ok := flow.Meta(msg.Span.Start); ok {
			reachable := !meta.Unreachable
			stops := meta.StopsExecution
			ans.IsReachable = &reachable
			ans.StopsExecution = &stops
		}
	}
	return ans
}

func faultKind(stage string) lint.PluginErrorKind {
	switch stage {
	case "decode":
		return lint.PluginMalformedInput
	case "load":
		return lint.PluginLoadError
	}
	return lint.PluginRuntimeFault
}

func (h *Host) fail(kind lint.PluginErrorKind, err error) *lint.PluginError {
	return &lint.PluginError{RuleCode: h.desc.Path, Kind: kind, Err: err}
}

// fault wraps a mid-conversation failure, attaching the child's stderr when
// it said anything.
func (h *Host) fault(env *environment, err error) *lint.PluginError {
	if msg := strings.TrimSpace(env.stderr.String()); msg != "" {
		err = fmt.Errorf("%w (stderr: %s)", err, msg)
	}
	return h.fail(lint.PluginRuntimeFault, err)
}

func (env *environment) send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = env.stdin.Write(append(data, '\n'))
	return err
}

// finish closes the channel and reaps the child after a clean done.
func (env *environment) finish() error {
	env.stdin.Close()
	env.waited = true
	if err := env.cmd.Wait(); err != nil {
		return fmt.Errorf("exit after done: %w", err)
	}
	return nil
}

// dispose tears the sandbox down unconditionally. Safe after finish.
func (env *environment) dispose() {
	if !env.waited {
		env.stdin.Close()
		if env.cmd.Process != nil {
			env.cmd.Process.Kill()
		}
		env.cmd.Wait()
		env.waited = true
	}
	os.RemoveAll(env.dir)
}

// harvest accumulates what one invocation produced. Codes keep their
// registration order; diagnostics for codes that never registered are
// dropped at fold time.
type harvest struct {
	order []string
	codes map[string]struct{}
	diags map[string][]wireDiagnostic
}

func newHarvest() *harvest {
	return &harvest{
		codes: make(map[string]struct{}),
		diags: make(map[string][]wireDiagnostic),
	}
}

func (hv *harvest) register(code string) {
	if code == "" {
		return
	}
	if _, dup := hv.codes[code]; dup {
		return
	}
	hv.codes[code] = struct{}{}
	hv.order = append(hv.order, code)
}

func (hv *harvest) fold(c *lint.Context) {
	if len(hv.order) > 0 {
		c.SetPluginCodes(hv.order)
	}
	for _, code := range hv.order {
		for _, d := range hv.diags[code] {
			if d.Hint != "" {
				c.AddDiagnosticWithHint(d.Span, code, d.Message, d.Hint)
			} else {
				c.AddDiagnostic(d.Span, code, d.Message)
			}
		}
	}
}
