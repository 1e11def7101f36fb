package queryset

// Column 代表一列，name 是结构体的字段名而不是数据库列名
// table 不为 nil 的时候，列会解析到对应的表（JOIN 查询）上
type Column struct {
	table TableReference
	name  string
	alias string
}

func C(name string) Column {
	return Column{name: name}
}

func (c Column) expr() {}

func (c Column) selectable() {}

// Column 本身也可以用在 UPSERT 的赋值部分，表示沿用 VALUES 里的值
func (c Column) assign() {}

// As 指定别名。这里使用值接收者，每次返回一个新的 Column，避免并发问题
func (c Column) As(alias string) Column {
	return Column{
		table: c.table,
		name:  c.name,
		alias: alias,
	}
}

// EQ 例如 C("Id").EQ(12)
func (c Column) EQ(arg any) Predicate {
	return Predicate{
		left:  c,
		op:    opEQ,
		right: exprOf(arg),
	}
}

func (c Column) NEQ(arg any) Predicate {
	return Predicate{
		left:  c,
		op:    opNEQ,
		right: exprOf(arg),
	}
}

func (c Column) LT(arg any) Predicate {
	return Predicate{
		left:  c,
		op:    opLT,
		right: exprOf(arg),
	}
}

func (c Column) LE(arg any) Predicate {
	return Predicate{
		left:  c,
		op:    opLE,
		right: exprOf(arg),
	}
}

func (c Column) GT(arg any) Predicate {
	return Predicate{
		left:  c,
		op:    opGT,
		right: exprOf(arg),
	}
}

func (c Column) GE(arg any) Predicate {
	return Predicate{
		left:  c,
		op:    opGE,
		right: exprOf(arg),
	}
}

// In 例如 C("Id").In(1, 2, 3)
func (c Column) In(vals ...any) Predicate {
	return Predicate{
		left:  c,
		op:    opIN,
		right: values{data: vals},
	}
}

func (c Column) NotIn(vals ...any) Predicate {
	return Predicate{
		left:  c,
		op:    opNotIN,
		right: values{data: vals},
	}
}

// Like 例如 C("Name").Like("%John%")
func (c Column) Like(pattern any) Predicate {
	return Predicate{
		left:  c,
		op:    opLike,
		right: exprOf(pattern),
	}
}

func (c Column) NotLike(pattern any) Predicate {
	return Predicate{
		left:  c,
		op:    opNotLike,
		right: exprOf(pattern),
	}
}

func (c Column) IsNull() Predicate {
	return Predicate{
		left: c,
		op:   opIsNull,
	}
}

func (c Column) IsNotNull() Predicate {
	return Predicate{
		left: c,
		op:   opNotNull,
	}
}

// Add 构造 UPDATE 里的自增表达式，例如 Assign("Age", C("Age").Add(1))
func (c Column) Add(delta any) MathExpr {
	return MathExpr{
		left:  c,
		op:    opAdd,
		right: valueOf(delta),
	}
}

func (c Column) Multi(delta any) MathExpr {
	return MathExpr{
		left:  c,
		op:    opMulti,
		right: valueOf(delta),
	}
}
