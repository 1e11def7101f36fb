package queryset

type op string

const (
	opEQ      op = "="
	opNEQ     op = "!="
	opLT      op = "<"
	opLE      op = "<="
	opGT      op = ">"
	opGE      op = ">="
	opAND     op = "AND"
	opOR      op = "OR"
	opNOT     op = "NOT"
	opIN      op = "IN"
	opNotIN   op = "NOT IN"
	opLike    op = "LIKE"
	opNotLike op = "NOT LIKE"
	opIsNull  op = "IS NULL"
	opNotNull op = "IS NOT NULL"
	opAdd     op = "+"
	opMulti   op = "*"
)

func (o op) String() string {
	return string(o)
}

// Predicate 代表一个查询条件
// Predicate 可以通过和 Predicate 组合构成复杂的查询条件
type Predicate struct {
	left  Expression
	op    op
	right Expression
}

func (Predicate) expr() {}

func Not(p Predicate) Predicate {
	return Predicate{
		op:    opNOT,
		right: p,
	}
}

func (p Predicate) And(r Predicate) Predicate {
	return Predicate{
		left:  p,
		op:    opAND,
		right: r,
	}
}

func (p Predicate) Or(r Predicate) Predicate {
	return Predicate{
		left:  p,
		op:    opOR,
		right: r,
	}
}
