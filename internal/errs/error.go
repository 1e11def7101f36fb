package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrPointerOnly 只支持一级指针作为输入
	// 看到这个 error 说明你输入了其它的东西
	// 我们并不希望用户能够直接使用 err == ErrPointerOnly
	ErrPointerOnly = errors.New("queryset: 只支持一级指针作为输入，例如 *User")

	// ErrNoRows 代表没有找到数据
	ErrNoRows = errors.New("queryset: 未找到数据")

	// ErrInsertZeroRow INSERT 语句至少需要一行数据
	ErrInsertZeroRow = errors.New("queryset: 插入 0 行")

	// ErrNoUpdatedColumns UPDATE 语句至少需要一个赋值
	ErrNoUpdatedColumns = errors.New("queryset: 未指定更新的列")

	// ErrTooManyReturnedColumns 查询返回的列数多于目标结构体的字段数
	ErrTooManyReturnedColumns = errors.New("queryset: 过多列")
)

func NewErrUnknownField(name string) error {
	return fmt.Errorf("queryset: 未知字段 %s", name)
}

func NewErrUnknownColumn(name string) error {
	return fmt.Errorf("queryset: 未知列 %s", name)
}

func NewErrUnsupportedExpressionType(exp any) error {
	return fmt.Errorf("queryset: 不支持的表达式 %v", exp)
}

func NewErrUnsupportedSelectable(exp any) error {
	return fmt.Errorf("queryset: 不支持的目标列 %v", exp)
}

func NewErrUnsupportedAssignableType(exp any) error {
	return fmt.Errorf("queryset: 不支持的赋值表达式类型 %v", exp)
}

func NewErrUnsupportedTable(table any) error {
	return fmt.Errorf("queryset: 不支持的 TableReference 类型 %v", table)
}

func NewErrInvalidTagContent(tag string) error {
	return fmt.Errorf("queryset: 错误的标签设置: %s", tag)
}

func NewErrUnsupportedColumnType(typ any) error {
	return fmt.Errorf("queryset: 无法为类型 %v 生成建表列定义", typ)
}

// NewErrFailedToRollbackTx DoTx 中业务失败并且回滚也失败时返回
func NewErrFailedToRollbackTx(bizErr error, rbErr error, panicked bool) error {
	return fmt.Errorf("queryset: 事务闭包回滚失败，业务错误 %w，回滚错误 %s，是否 panic %t",
		bizErr, rbErr, panicked)
}
