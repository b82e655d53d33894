package ast

// Visitor's Visit method is invoked for each node encountered by Walk. If
// the result is non-nil, Walk visits each child with visitor w, followed by
// a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

func walkStmts(v Visitor, list []Stmt) {
	for _, s := range list {
		Walk(v, s)
	}
}

func walkExprs(v Visitor, list []Expr) {
	for _, e := range list {
		if e != nil { // array holes
			Walk(v, e)
		}
	}
}

// Walk traverses the tree rooted at node in depth-first source order.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		walkStmts(v, n.Body)

	case *Function:
		for _, p := range n.Params {
			Walk(v, p)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}
		if n.ExprBody != nil {
			Walk(v, n.ExprBody)
		}

	// Statements.
	case *BlockStmt:
		walkStmts(v, n.Body)
	case *ExprStmt:
		Walk(v, n.X)
	case *EmptyStmt, *DebuggerStmt, *OpaqueStmt:
		// leaves
	case *VarDecl:
		for _, d := range n.Decls {
			Walk(v, d)
		}
	case *VarDeclarator:
		Walk(v, n.Name)
		if n.Init != nil {
			Walk(v, n.Init)
		}
	case *FnDecl:
		if n.Name != nil {
			Walk(v, n.Name)
		}
		Walk(v, n.Fn)
	case *ReturnStmt:
		if n.Arg != nil {
			Walk(v, n.Arg)
		}
	case *IfStmt:
		Walk(v, n.Test)
		Walk(v, n.Cons)
		if n.Alt != nil {
			Walk(v, n.Alt)
		}
	case *WhileStmt:
		Walk(v, n.Test)
		Walk(v, n.Body)
	case *DoWhileStmt:
		Walk(v, n.Body)
		Walk(v, n.Test)
	case *ForStmt:
		if n.Init != nil {
			Walk(v, n.Init)
		}
		if n.Test != nil {
			Walk(v, n.Test)
		}
		if n.Update != nil {
			Walk(v, n.Update)
		}
		Walk(v, n.Body)
	case *ForInStmt:
		Walk(v, n.Left)
		Walk(v, n.Right)
		Walk(v, n.Body)
	case *SwitchStmt:
		Walk(v, n.Disc)
		for _, c := range n.Cases {
			Walk(v, c)
		}
	case *SwitchCase:
		if n.Test != nil {
			Walk(v, n.Test)
		}
		walkStmts(v, n.Body)
	case *TryStmt:
		Walk(v, n.Block)
		if n.Handler != nil {
			Walk(v, n.Handler)
		}
		if n.Finalizer != nil {
			Walk(v, n.Finalizer)
		}
	case *CatchClause:
		if n.Param != nil {
			Walk(v, n.Param)
		}
		Walk(v, n.Body)
	case *ThrowStmt:
		Walk(v, n.Arg)
	case *BreakStmt:
		if n.Label != nil {
			Walk(v, n.Label)
		}
	case *ContinueStmt:
		if n.Label != nil {
			Walk(v, n.Label)
		}
	case *LabeledStmt:
		Walk(v, n.Label)
		Walk(v, n.Body)

	// Expressions.
	case *Ident, *Lit, *OpaqueExpr:
		// leaves
	case *TemplateLit:
		walkExprs(v, n.Exprs)
	case *ArrayLit:
		walkExprs(v, n.Elems)
	case *ObjectLit:
		for _, p := range n.Props {
			Walk(v, p)
		}
	case *Property:
		Walk(v, n.Key)
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *UnaryExpr:
		Walk(v, n.Arg)
	case *UpdateExpr:
		Walk(v, n.Arg)
	case *BinExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *AssignExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *CondExpr:
		Walk(v, n.Test)
		Walk(v, n.Cons)
		Walk(v, n.Alt)
	case *CallExpr:
		Walk(v, n.Callee)
		walkExprs(v, n.Args)
	case *NewExpr:
		Walk(v, n.Callee)
		walkExprs(v, n.Args)
	case *MemberExpr:
		Walk(v, n.Obj)
		Walk(v, n.Prop)
	case *SeqExpr:
		walkExprs(v, n.Exprs)
	case *FnExpr:
		if n.Name != nil {
			Walk(v, n.Name)
		}
		Walk(v, n.Fn)
	case *ArrowExpr:
		Walk(v, n.Fn)
	case *SpreadExpr:
		Walk(v, n.Arg)
	case *TSNonNull:
		Walk(v, n.X)
	case *TSAsExpr:
		Walk(v, n.X)
		Walk(v, n.TypeAnn)

	// Patterns.
	case *IdentPat:
		if n.TypeAnn != nil {
			Walk(v, n.TypeAnn)
		}
	case *ArrayPat:
		for _, e := range n.Elems {
			if e != nil {
				Walk(v, e)
			}
		}
		if n.TypeAnn != nil {
			Walk(v, n.TypeAnn)
		}
	case *ObjectPat:
		if n.TypeAnn != nil {
			Walk(v, n.TypeAnn)
		}
	case *RestPat:
		Walk(v, n.Arg)
	case *OpaquePat:
		// leaf

	// Types.
	case *TSLitType:
		Walk(v, n.Lit)
	case *TSTypeRef, *OpaqueType:
		// leaves
	}

	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses the tree calling f for each node; if f returns false the
// node's children are skipped. f is not called with nil.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(func(n Node) bool {
		if n == nil {
			return false
		}
		return f(n)
	}), node)
}
