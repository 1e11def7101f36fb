package queryset

// Expression 代表语句，或者语句的部分
// 做成标记接口，具体的构造逻辑在 builder 里面
type Expression interface {
	expr()
}

// exprOf returns an Expression based on the input parameter.
func exprOf(e any) Expression {
	switch exp := e.(type) {
	case Expression:
		return exp
	default:
		// 不是 Expression 类型就包装成参数
		return valueOf(exp)
	}
}

// value 查询参数，最终以占位符形式出现在 SQL 里
type value struct {
	val any
}

func (v value) expr() {}

func valueOf(val any) value {
	return value{val: val}
}

// values IN / NOT IN 右边的参数列表
type values struct {
	data []any
}

func (values) expr() {}

// RawExpr 代表一个原生表达式
// 意味着 queryset 不会对它进行任何处理
type RawExpr struct {
	raw  string
	args []any
}

func (r RawExpr) selectable() {}

func (r RawExpr) expr() {}

// AsPredicate 将原生表达式当做查询条件使用
func (r RawExpr) AsPredicate() Predicate {
	return Predicate{
		left: r,
	}
}

// Raw 创建一个 RawExpr
func Raw(expr string, args ...any) RawExpr {
	return RawExpr{
		raw:  expr,
		args: args,
	}
}

type binaryExpr struct {
	left  Expression
	op    op
	right Expression
}

func (binaryExpr) expr() {}

// MathExpr UPDATE 里面的计算表达式，例如 C("Age").Add(1)
type MathExpr binaryExpr

func (m MathExpr) Add(val any) MathExpr {
	return MathExpr{
		left:  m,
		op:    opAdd,
		right: valueOf(val),
	}
}

func (m MathExpr) Multi(val any) MathExpr {
	return MathExpr{
		left:  m,
		op:    opMulti,
		right: valueOf(val),
	}
}

func (m MathExpr) expr() {}
