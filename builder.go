package queryset

import (
	"strings"

	"github.com/hmtmcse-com/queryset/internal/errs"
	"github.com/hmtmcse-com/queryset/model"
)

// builder SELECT UPDATE INSERT DELETE 都需要使用的拼接部分
// core 嵌在这里，语句 builder 只需要嵌入 builder 自己
type builder struct {
	core
	sb     strings.Builder // sb is used to build the SQL query string.
	args   []any           // args holds the arguments for the query.
	model  *model.Model    // model is the metadata of the main table.
	quoter byte
}

// newBuilder 从会话上提取 core，语句 builder 构造的时候都调用这个
func newBuilder(sess Session) builder {
	c := sess.getCore()
	return builder{
		core:   c,
		quoter: c.dialect.quoter(),
	}
}

func (b *builder) quote(name string) {
	b.sb.WriteByte(b.quoter)
	b.sb.WriteString(name)
	b.sb.WriteByte(b.quoter)
}

// buildColumn 把列名转换成数据库列名并拼接
// table 为 nil 的时候在主表元数据里面解析，否则解析到 JOIN 的表上
func (b *builder) buildColumn(c Column) error {
	switch table := c.table.(type) {
	case nil:
		fd, ok := b.model.FieldMap[c.name]
		if !ok {
			return errs.NewErrUnknownField(c.name)
		}
		b.quote(fd.ColName)
	case Table:
		m, err := b.r.Get(table.entity)
		if err != nil {
			return err
		}
		fd, ok := m.FieldMap[c.name]
		if !ok {
			return errs.NewErrUnknownField(c.name)
		}
		if table.alias != "" {
			b.quote(table.alias)
			b.sb.WriteByte('.')
		}
		b.quote(fd.ColName)
	default:
		return errs.NewErrUnsupportedTable(table)
	}
	return nil
}

func (b *builder) buildAggregate(a Aggregate, useAlias bool) error {
	b.sb.WriteString(a.fn)
	b.sb.WriteByte('(')
	if a.arg == "*" {
		// COUNT(*) 这种形态不需要解析字段
		b.sb.WriteByte('*')
	} else if err := b.buildColumn(Column{name: a.arg}); err != nil {
		return err
	}
	b.sb.WriteByte(')')
	if useAlias {
		b.buildAs(a.alias)
	}
	return nil
}

func (b *builder) buildAs(alias string) {
	if alias != "" {
		b.sb.WriteString(" AS ")
		b.quote(alias)
	}
}

// buildPredicates builds the predicates for the given list of predicates.
// 多个 Predicate 之间用 AND 合并
func (b *builder) buildPredicates(ps []Predicate) error {
	p := ps[0]
	for i := 1; i < len(ps); i++ {
		p = p.And(ps[i])
	}
	return b.buildExpression(p)
}

// buildExpression 递归构造表达式
// Column 代表列名，直接拼接列名
// value 代表参数，写占位符并加入参数列表
// Predicate 代表一个查询条件，左右两边如果是复杂结构就加上括号
func (b *builder) buildExpression(e Expression) error {
	if e == nil {
		return nil
	}

	switch exp := e.(type) {
	case Column:
		return b.buildColumn(exp)
	case Aggregate:
		// HAVING 里面的聚合函数不拼接别名
		return b.buildAggregate(exp, false)
	case value:
		b.sb.WriteByte('?')
		b.addArgs(exp.val)
	case values:
		b.sb.WriteByte('(')
		for i := range exp.data {
			if i > 0 {
				b.sb.WriteByte(',')
			}
			b.sb.WriteByte('?')
		}
		b.sb.WriteByte(')')
		b.addArgs(exp.data...)
	case RawExpr:
		b.sb.WriteString(exp.raw)
		if len(exp.args) != 0 {
			b.addArgs(exp.args...)
		}
	case MathExpr:
		return b.buildBinaryExpr(binaryExpr(exp))
	case binaryExpr:
		return b.buildBinaryExpr(exp)
	case Predicate:
		// 左边有复杂结构，则在最外边套一层括号
		_, lp := exp.left.(Predicate)
		if lp {
			b.sb.WriteByte('(')
		}
		if err := b.buildExpression(exp.left); err != nil {
			return err
		}
		if lp {
			b.sb.WriteByte(')')
		}

		if exp.op == "" {
			// 只有左边，例如 Raw(...).AsPredicate()
			return nil
		}

		b.sb.WriteByte(' ')
		b.sb.WriteString(exp.op.String())

		// IS NULL 这类后缀运算符没有右半部分
		if exp.right == nil {
			return nil
		}
		b.sb.WriteByte(' ')

		_, rp := exp.right.(Predicate)
		if rp {
			b.sb.WriteByte('(')
		}
		if err := b.buildExpression(exp.right); err != nil {
			return err
		}
		if rp {
			b.sb.WriteByte(')')
		}
	default:
		return errs.NewErrUnsupportedExpressionType(exp)
	}

	return nil
}

func (b *builder) buildBinaryExpr(e binaryExpr) error {
	err := b.buildSubExpr(e.left)
	if err != nil {
		return err
	}
	b.sb.WriteString(e.op.String())
	return b.buildSubExpr(e.right)
}

func (b *builder) buildSubExpr(subExpr Expression) error {
	switch sub := subExpr.(type) {
	case MathExpr:
		b.sb.WriteByte('(')
		if err := b.buildBinaryExpr(binaryExpr(sub)); err != nil {
			return err
		}
		b.sb.WriteByte(')')
	case binaryExpr:
		b.sb.WriteByte('(')
		if err := b.buildBinaryExpr(sub); err != nil {
			return err
		}
		b.sb.WriteByte(')')
	case Predicate:
		b.sb.WriteByte('(')
		if err := b.buildExpression(sub); err != nil {
			return err
		}
		b.sb.WriteByte(')')
	default:
		return b.buildExpression(sub)
	}
	return nil
}

func (b *builder) addArgs(args ...any) {
	if b.args == nil {
		b.args = make([]any, 0, 8)
	}
	b.args = append(b.args, args...)
}
