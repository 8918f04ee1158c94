package vhdl

// File is a VHDL source. Only entity declarations are modelled; every other
// token (architectures, packages, library clauses) is skipped.
type File struct {
	Units []*Unit `@@*`
}

// Unit is either an entity declaration or a skipped token.
type Unit struct {
	Entity *Entity `  @@`
	Skip   *string `| ( @!KwEntity | @KwEntity )`
}

// Entity represents an entity declaration
// Example: entity fifo is generic (...); port (...); end entity fifo;
type Entity struct {
	Name    string         `KwEntity @Ident KwIs`
	Generic *GenericClause `@@?`
	Port    *PortClause    `@@?`
	Decls   []string       `( @!KwEnd )*`
	EndName string         `KwEnd KwEntity? @Ident? Semicolon`
}

// GenericClause is kept only to be skipped over.
type GenericClause struct {
	Body *Group `KwGeneric @@ Semicolon`
}

// PortClause represents the port declarations
// Example: port ( clk : in std_logic; data : out std_logic_vector(7 downto 0) );
type PortClause struct {
	Ports []*PortDecl `KwPort LParen ( @@ ( Semicolon @@ )* Semicolon? )? RParen Semicolon`
}

// PortDecl declares one or more ports sharing a mode and a type.
type PortDecl struct {
	Names   []string   `@Ident ( Comma @Ident )*`
	Mode    string     `Colon @( KwIn | KwOut | KwInout | KwBuffer | KwLinkage )?`
	Type    []string   `@Ident ( Dot @Ident )*`
	Range   *RangeSpec `@@?`
	Default *Expr      `( Assign @@ )?`
}

// RangeSpec represents an index constraint such as (7 downto 0).
type RangeSpec struct {
	Left      []string `LParen ( @!( KwDownto | KwTo | LParen | RParen ) )+`
	Direction string   `@( KwDownto | KwTo )`
	Right     []string `( @!( LParen | RParen ) )+ RParen`
}

// Expr is a default value expression, kept only to be skipped over.
type Expr struct {
	Items []*ExprItem `@@+`
}

// ExprItem is one token or parenthesised group of an expression.
type ExprItem struct {
	Group *Group  `  @@`
	Token *string `| @!( Semicolon | LParen | RParen )`
}

// Group is a balanced parenthesised token sequence.
type Group struct {
	Items []*GroupItem `LParen @@* RParen`
}

// GroupItem is a nested group or a single token.
type GroupItem struct {
	Nested *Group  `  @@`
	Token  *string `| @!( LParen | RParen )`
}

// Entities returns all entity declarations in the file.
func (f *File) Entities() []*Entity {
	var entities []*Entity
	for _, u := range f.Units {
		if u.Entity != nil {
			entities = append(entities, u.Entity)
		}
	}
	return entities
}
