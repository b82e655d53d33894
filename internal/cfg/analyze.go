package cfg

import (
	"github.com/tanquar/deno-lint/internal/ast"
)

// termKind classifies how a statement terminates, when it does.
type termKind uint8

const (
	termNone     termKind = iota
	termBreak             // exits the nearest enclosing loop or switch
	termContinue          // exits the current loop iteration
	termReturn            // return or throw: leaves the whole function
)

type analyzer struct {
	flow  *ControlFlow
	terms map[ast.Stmt]termKind // memo, keeps the pass linear
}

// stmtList processes a statement sequence in source order and returns
// whether the position after the sequence is reachable.
func (a *analyzer) stmtList(list []ast.Stmt, reachable bool) bool {
	for _, s := range list {
		reachable = a.stmt(s, reachable)
	}
	return reachable
}

// stmt records the statement's facts (reachability is sampled before the
// statement's own effect), descends into sub-statements, and returns
// whether the following sibling is reachable.
func (a *analyzer) stmt(s ast.Stmt, reachable bool) bool {
	if s == nil {
		return reachable
	}

	term := a.term(s)
	a.flow.meta[s.Span().Start] = Meta{
		Unreachable:    !reachable,
		StopsExecution: term != termNone,
	}

	switch n := s.(type) {
	case *ast.BlockStmt:
		a.stmtList(n.Body, reachable)
	case *ast.ExprStmt:
		a.scanExpr(n.X)
	case *ast.VarDecl:
		for _, d := range n.Decls {
			a.scanExpr(d.Init)
		}
	case *ast.FnDecl:
		// новая область достижимости: состояние не протекает через
		// границу функции
		a.function(n.Fn)
	case *ast.ReturnStmt:
		a.scanExpr(n.Arg)
	case *ast.ThrowStmt:
		a.scanExpr(n.Arg)
	case *ast.IfStmt:
		a.scanExpr(n.Test)
		a.stmt(n.Cons, reachable)
		if n.Alt != nil {
			a.stmt(n.Alt, reachable)
		}
	case *ast.WhileStmt:
		a.scanExpr(n.Test)
		a.stmt(n.Body, reachable)
	case *ast.DoWhileStmt:
		a.stmt(n.Body, reachable)
		a.scanExpr(n.Test)
	case *ast.ForStmt:
		switch init := n.Init.(type) {
		case *ast.VarDecl:
			a.stmt(init, reachable)
		case ast.Expr:
			a.scanExpr(init)
		}
		a.scanExpr(n.Test)
		a.scanExpr(n.Update)
		a.stmt(n.Body, reachable)
	case *ast.ForInStmt:
		if init, ok := n.Left.(*ast.VarDecl); ok {
			a.stmt(init, reachable)
		}
		a.scanExpr(n.Right)
		a.stmt(n.Body, reachable)
	case *ast.SwitchStmt:
		// дискриминант и тесты case вычисляются независимо от
		// достижимости тел
		a.scanExpr(n.Disc)
		for _, c := range n.Cases {
			a.scanExpr(c.Test)
			a.stmtList(c.Body, reachable)
		}
	case *ast.TryStmt:
		a.stmtList(n.Block.Body, reachable)
		if n.Handler != nil {
			// catch считается потенциально достижимым всегда:
			// статический анализ throw не выполняется
			a.stmtList(n.Handler.Body.Body, reachable)
		}
		if n.Finalizer != nil {
			a.stmtList(n.Finalizer.Body, reachable)
		}
	case *ast.LabeledStmt:
		a.stmt(n.Body, reachable)
	}

	if term != termNone {
		return false
	}
	return reachable
}

// scanExpr looks for function literals inside an expression; each starts a
// fresh reachability scope.
func (a *analyzer) scanExpr(e ast.Expr) {
	if e == nil {
		return
	}
	ast.Inspect(e, func(n ast.Node) bool {
		switch fn := n.(type) {
		case *ast.FnExpr:
			a.function(fn.Fn)
			return false
		case *ast.ArrowExpr:
			a.function(fn.Fn)
			return false
		}
		return true
	})
}

func (a *analyzer) function(fn *ast.Function) {
	if fn == nil {
		return
	}
	if fn.Body != nil {
		a.stmtList(fn.Body.Body, true)
	}
	if fn.ExprBody != nil {
		a.scanExpr(fn.ExprBody)
	}
}

// listTerm computes how a statement sequence terminates: the first
// terminating statement wins, everything after it is dead anyway.
func (a *analyzer) listTerm(list []ast.Stmt) termKind {
	for _, s := range list {
		if t := a.term(s); t != termNone {
			return t
		}
	}
	return termNone
}

// term classifies the statement's own termination effect.
func (a *analyzer) term(s ast.Stmt) termKind {
	if s == nil {
		return termNone
	}
	if t, ok := a.terms[s]; ok {
		return t
	}
	t := a.computeTerm(s)
	a.terms[s] = t
	return t
}

func (a *analyzer) computeTerm(s ast.Stmt) termKind {
	switch n := s.(type) {
	case *ast.ReturnStmt, *ast.ThrowStmt:
		return termReturn
	case *ast.BreakStmt:
		return termBreak
	case *ast.ContinueStmt:
		return termContinue

	case *ast.BlockStmt:
		return a.listTerm(n.Body)

	case *ast.IfStmt:
		if n.Alt == nil {
			return termNone
		}
		return combineTerm(a.term(n.Cons), a.term(n.Alt))

	case *ast.WhileStmt:
		// continuation after a loop is reachable unless the condition is
		// statically always-true and no break exits the body
		if isAlwaysTrue(n.Test) && !hasLoopBreak(n.Body) {
			return termReturn
		}
		return termNone

	case *ast.DoWhileStmt:
		if a.term(n.Body) == termReturn {
			return termReturn
		}
		if isAlwaysTrue(n.Test) && !hasLoopBreak(n.Body) {
			return termReturn
		}
		return termNone

	case *ast.ForStmt:
		if (n.Test == nil || isAlwaysTrue(n.Test)) && !hasLoopBreak(n.Body) {
			return termReturn
		}
		return termNone

	case *ast.SwitchStmt:
		return a.switchTerm(n)

	case *ast.TryStmt:
		return a.tryTerm(n)

	case *ast.LabeledStmt:
		// break-to-label lands right after the labeled statement
		if t := a.term(n.Body); t != termBreak {
			return t
		}
		return termNone
	}
	return termNone
}

// switchTerm: the continuation after a switch is unreachable only when a
// default case exists and every case body terminates past the switch
// (return/throw/continue); an exiting break makes the continuation
// reachable, and a completed body falls through to the next case.
func (a *analyzer) switchTerm(n *ast.SwitchStmt) termKind {
	hasDefault := false
	for _, c := range n.Cases {
		if c.Test == nil {
			hasDefault = true
			break
		}
	}
	if !hasDefault || len(n.Cases) == 0 {
		return termNone
	}

	weakest := termReturn
	next := termNone
	for i := len(n.Cases) - 1; i >= 0; i-- {
		t := a.listTerm(n.Cases[i].Body)
		if t == termNone {
			t = next // fallthrough
		}
		next = t
		if t == termNone || t == termBreak {
			return termNone
		}
		if t < weakest {
			weakest = t
		}
	}
	return weakest
}

// tryTerm: a catch absorbs termination of the protected block, so both must
// terminate for the try to; a terminating finally overrides everything.
func (a *analyzer) tryTerm(n *ast.TryStmt) termKind {
	if n.Finalizer != nil {
		if t := a.listTerm(n.Finalizer.Body); t != termNone {
			return t
		}
	}
	blockTerm := termNone
	if n.Block != nil {
		blockTerm = a.listTerm(n.Block.Body)
	}
	if n.Handler == nil {
		return blockTerm
	}
	handlerTerm := a.listTerm(n.Handler.Body.Body)
	return combineTerm(blockTerm, handlerTerm)
}

// combineTerm merges two branch terminators: both must terminate, and the
// weaker effect (break < continue < return) decides what the construct as a
// whole does.
func combineTerm(x, y termKind) termKind {
	if x == termNone || y == termNone {
		return termNone
	}
	if x < y {
		return x
	}
	return y
}

// isAlwaysTrue reports whether the loop condition is the literal `true`.
// Value-level reasoning beyond that is rule territory, not the CFG's.
func isAlwaysTrue(e ast.Expr) bool {
	lit, ok := e.(*ast.Lit)
	return ok && lit.Kind == ast.LitBool && lit.Bool
}

// hasLoopBreak reports whether the loop body contains a break that can exit
// this loop. Unlabeled breaks inside nested loops and switches target those
// constructs; function boundaries stop the search. Labeled breaks are
// counted conservatively wherever they appear.
func hasLoopBreak(body ast.Stmt) bool {
	found := false
	var scan func(s ast.Stmt, nested bool)

	scanList := func(list []ast.Stmt, nested bool) {
		for _, s := range list {
			scan(s, nested)
		}
	}

	scan = func(s ast.Stmt, nested bool) {
		if s == nil || found {
			return
		}
		switch n := s.(type) {
		case *ast.BreakStmt:
			if !nested || n.Label != nil {
				found = true
			}
		case *ast.BlockStmt:
			scanList(n.Body, nested)
		case *ast.IfStmt:
			scan(n.Cons, nested)
			scan(n.Alt, nested)
		case *ast.WhileStmt:
			scan(n.Body, true)
		case *ast.DoWhileStmt:
			scan(n.Body, true)
		case *ast.ForStmt:
			scan(n.Body, true)
		case *ast.ForInStmt:
			scan(n.Body, true)
		case *ast.SwitchStmt:
			for _, c := range n.Cases {
				scanList(c.Body, true)
			}
		case *ast.TryStmt:
			if n.Block != nil {
				scanList(n.Block.Body, nested)
			}
			if n.Handler != nil {
				scanList(n.Handler.Body.Body, nested)
			}
			if n.Finalizer != nil {
				scanList(n.Finalizer.Body, nested)
			}
		case *ast.LabeledStmt:
			scan(n.Body, nested)
		}
	}

	scan(body, false)
	return found
}
