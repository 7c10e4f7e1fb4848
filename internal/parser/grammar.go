package parser

// The grammar below mirrors the teacher's struct-tag style: each production
// is a plain Go struct whose field tags are participle EBNF fragments, with
// tagged-union alternatives expressed as sibling pointer fields joined by
// `|`. It covers exactly the constructs the ssa package needs to exercise:
// scoped defines, assigns (including indexed writes), if/else, and
// for-loops.

type Program struct {
	Globals  []*GlobalDecl `@@*`
	Function *Function     `@@`
}

type GlobalDecl struct {
	Name string `"global" @Ident ":"`
	Type *Type  `@@ ";"`
}

type Type struct {
	Tensor *Type  `  "tensor" "<" @@ ">"`
	Name   string `| @Ident`
}

type Function struct {
	Name   string           `"func" @Ident "("`
	Params []*Param         `[ @@ { "," @@ } ] ")"`
	Return *Type            `[ "-" ">" @@ ]`
	Body   []*Stmt          `"{" @@* "}"`
}

type Param struct {
	Name string `@Ident ":"`
	Type *Type  `@@`
}

type Stmt struct {
	Define *DefineStmt `  @@`
	If     *IfStmt     `| @@`
	For    *ForStmt    `| @@`
	Assign *AssignStmt `| @@`
}

type DefineStmt struct {
	Name string `"define" @Ident ":"`
	Type *Type  `@@`
	Init *Expr  `[ "=" @@ ] ";"`
}

type AssignStmt struct {
	Name  string `@Ident`
	Index *Expr  `[ "[" @@ "]" ]`
	Value *Expr  `"=" @@ ";"`
}

type IfStmt struct {
	Cond *Expr   `"if" "(" @@ ")" "{"`
	Then []*Stmt `@@* "}"`
	Else []*Stmt `[ "else" "{" @@* "}" ]`
}

type ForStmt struct {
	Ind   string `"for" @Ident "="`
	Begin *Expr  `@@ "to"`
	End   *Expr  `@@`
	Step  *Expr  `[ "step" @@ ]`
	Body  []*Stmt `"{" @@* "}"`
}

type Expr struct {
	Left *Unary   `@@`
	Ops  []*BinOp `{ @@ }`
}

type BinOp struct {
	Operator string `@("==" | "!=" | "<=" | ">=" | "&&" | "||" | "<" | ">" | "+" | "-" | "*" | "/" | "%")`
	Right    *Unary `@@`
}

type Unary struct {
	Negate  bool     `[ @"-" ]`
	Primary *Primary `@@`
}

type Primary struct {
	Index *IndexExpr `  @@`
	Float *string    `| @Float`
	Int   *string    `| @Integer`
	Ident *string    `| @Ident`
	Paren *Expr      `| "(" @@ ")"`
}

type IndexExpr struct {
	Name string `@Ident "["`
	Expr *Expr  `@@ "]"`
}
