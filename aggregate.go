package queryset

// Aggregate 代表聚合函数，例如 AVG, MAX, MIN 等，以及别名
// arg 为 "*" 的时候不做字段校验，直接生成 COUNT(*) 这种形态
type Aggregate struct {
	fn    string
	arg   string
	alias string
}

func (a Aggregate) expr() {}

func (a Aggregate) selectable() {}

// As 这里使用值作为接收者，每次都返回一个新的 Aggregate，可以防止并发问题
func (a Aggregate) As(alias string) Aggregate {
	return Aggregate{
		fn:    a.fn,
		arg:   a.arg,
		alias: alias,
	}
}

// EQ 例如 Avg("Age").EQ(12)，用于 HAVING
func (a Aggregate) EQ(arg any) Predicate {
	return Predicate{
		left:  a,
		op:    opEQ,
		right: exprOf(arg),
	}
}

func (a Aggregate) LT(arg any) Predicate {
	return Predicate{
		left:  a,
		op:    opLT,
		right: exprOf(arg),
	}
}

func (a Aggregate) GT(arg any) Predicate {
	return Predicate{
		left:  a,
		op:    opGT,
		right: exprOf(arg),
	}
}

func (a Aggregate) GE(arg any) Predicate {
	return Predicate{
		left:  a,
		op:    opGE,
		right: exprOf(arg),
	}
}

func Avg(c string) Aggregate {
	return Aggregate{
		fn:  "AVG",
		arg: c,
	}
}

func Max(c string) Aggregate {
	return Aggregate{
		fn:  "MAX",
		arg: c,
	}
}

func Min(c string) Aggregate {
	return Aggregate{
		fn:  "MIN",
		arg: c,
	}
}

func Count(c string) Aggregate {
	return Aggregate{
		fn:  "COUNT",
		arg: c,
	}
}

func Sum(c string) Aggregate {
	return Aggregate{
		fn:  "SUM",
		arg: c,
	}
}
