package request

// Visitor 意图访问者，每个变体对应一个方法
//
// 在 getblocktemplate 构建中 Visitor 额外要求 VisitCheckProposal。
type Visitor[T any] interface {
	VisitCommit() T
	VisitReducedValidation() T

	proposalVisitor[T]
}

// visitor 意图分派使用的内部访问者
type visitor interface {
	visitCommit()
	visitReducedValidation()

	proposalDispatcher
}

// Match 以访问者穷举匹配意图
func Match[T any](intent Intent, v Visitor[T]) T {
	d := &dispatcher[T]{v: v}
	intent.accept(d)
	return d.out
}

// dispatcher 把内部访问者调用转发给泛型访问者并保存结果
type dispatcher[T any] struct {
	v   Visitor[T]
	out T
}

func (d *dispatcher[T]) visitCommit() { d.out = d.v.VisitCommit() }

func (d *dispatcher[T]) visitReducedValidation() { d.out = d.v.VisitReducedValidation() }
