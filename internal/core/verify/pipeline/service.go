// Package pipeline 实现区块验证分发流水线
//
// 🎯 **分发流水线 (Dispatch Pipeline)**
//
// 每个提交按意图解析一次验证计划，然后依次经过：
//
//	语义验证(full, pow) → 上下文验证 → 提交（仅 CommitOnSuccess）
//
// 任一阶段失败即拒绝，协作者错误原样包装在 *verify.StageError 中。
// 上下文验证与提交在同一把链锁内执行，保证同一链状态上的检查与写入不被交错。
// 语义验证不持锁，批量验证时可以并行。
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	verifyconfig "github.com/weisyn/blockverify/internal/config/verify"
	"github.com/weisyn/blockverify/internal/core/verify/policy"
	"github.com/weisyn/blockverify/internal/core/verify/request"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/blockverify/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/blockverify/pkg/interfaces/verify"
)

// ErrNilRequest 提交为空
var ErrNilRequest = errors.New("提交不能为空")

// StageError 阶段错误（与 verify.StageError 为同一类型）
type StageError = verify.StageError

// Dependencies 流水线依赖
type Dependencies struct {
	Semantic verify.SemanticValidator    // 必需
	Chain    verify.ChainState           // 必需
	EventBus event.EventBus              // 可选，为空时不发布结果事件
	Options  *verifyconfig.VerifyOptions // 可选
	Logger   log.Logger                  // 可选
}

// Service 验证流水线
type Service struct {
	semantic       verify.SemanticValidator
	chain          verify.ChainState
	eventBus       event.EventBus
	logger         log.Logger
	maxConcurrency int

	// chainMu 串行化同一链状态上的上下文验证与提交
	chainMu sync.Mutex
}

var _ verify.Verifier = (*Service)(nil)

// NewService 创建验证流水线
func NewService(deps Dependencies) (*Service, error) {
	if deps.Semantic == nil {
		return nil, fmt.Errorf("semantic validator 不能为空")
	}
	if deps.Chain == nil {
		return nil, fmt.Errorf("chain state 不能为空")
	}
	opts := deps.Options
	if opts == nil {
		opts = verifyconfig.DefaultOptions()
	}
	maxConcurrency := opts.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	initPipelineMetrics()
	return &Service{
		semantic:       deps.Semantic,
		chain:          deps.Chain,
		eventBus:       deps.EventBus,
		logger:         deps.Logger,
		maxConcurrency: maxConcurrency,
	}, nil
}

// Chain 返回流水线使用的链状态
func (s *Service) Chain() verify.ChainReader { return s.chain }

// Verify 驱动单个提交走完流水线
//
// 拒绝时返回终态 Outcome 与 *verify.StageError。
// 上下文取消时返回停留在当前状态的 Outcome 与上下文错误，不做分类。
func (s *Service) Verify(ctx context.Context, req *request.Request) (*verify.Outcome, error) {
	return s.verify(ctx, req, nil)
}

// verify prev 非空时，须等 prev 关闭后才能进入上下文验证
func (s *Service) verify(ctx context.Context, req *request.Request, prev <-chan struct{}) (*verify.Outcome, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	start := time.Now()
	block := req.Block()
	plan := policy.Resolve(req)

	out := &verify.Outcome{
		SubmissionID: req.ID(),
		Intent:       req.Intent().String(),
		BlockHash:    block.Hash(),
		Height:       block.Height(),
		Plan:         plan,
	}
	out.Advance(verify.StateReceived)

	err := s.run(ctx, req, plan, out, prev)
	out.Elapsed = time.Since(start)
	s.finish(out, err)
	return out, err
}

// VerifyAll 并发验证一批提交，结果与输入一一对应
//
// 单个提交被拒绝不影响其他提交；并发数不超过 max_concurrency。
// 语义验证并行执行，上下文验证与提交按输入顺序逐个进行：
// 第 i 个提交必须等第 i-1 个提交结束后才进入链锁，
// 因此按父子顺序排列的一批区块会依次上链。
func (s *Service) VerifyAll(ctx context.Context, reqs []*request.Request) []verify.Result {
	results := make([]verify.Result, len(reqs))
	turns := make([]chan struct{}, len(reqs))
	for i := range turns {
		turns[i] = make(chan struct{})
	}

	var g errgroup.Group
	g.SetLimit(s.maxConcurrency)
	for i, req := range reqs {
		var prev <-chan struct{}
		if i > 0 {
			prev = turns[i-1]
		}
		g.Go(func() error {
			defer close(turns[i])
			out, err := s.verify(ctx, req, prev)
			results[i] = verify.Result{Outcome: out, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (s *Service) run(ctx context.Context, req *request.Request, plan policy.Plan, out *verify.Outcome, prev <-chan struct{}) error {
	block := req.Block()

	// 1. 语义验证
	if err := ctx.Err(); err != nil {
		return err
	}
	out.Advance(verify.StateSemanticValidating)
	stageStart := time.Now()
	err := s.semantic.ValidateSemantics(ctx, block, plan.FullSemanticChecks, plan.CheckProofOfWork)
	observeStage(verify.StageSemantic, stageStart)
	if err != nil {
		if cancelled(ctx, err) {
			return err
		}
		return reject(out, verify.StageSemantic, verify.KindSemanticInvalid, err)
	}

	// 批量验证时等待前一个提交离开链阶段
	if prev != nil {
		select {
		case <-prev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.chainMu.Lock()
	defer s.chainMu.Unlock()

	// 2. 上下文验证
	if err := ctx.Err(); err != nil {
		return err
	}
	out.Advance(verify.StateContextuallyValidating)
	stageStart = time.Now()
	err = s.chain.ValidateContext(ctx, block)
	observeStage(verify.StageContextual, stageStart)
	if err != nil {
		if cancelled(ctx, err) {
			return err
		}
		return reject(out, verify.StageContextual, verify.KindContextuallyInvalid, err)
	}

	if !plan.CommitOnSuccess {
		out.Advance(verify.StateEvaluated)
		return nil
	}

	// 3. 提交
	if err := ctx.Err(); err != nil {
		return err
	}
	out.Advance(verify.StateCommitting)
	stageStart = time.Now()
	err = s.chain.Commit(ctx, block)
	observeStage(verify.StageCommit, stageStart)
	if err != nil {
		if cancelled(ctx, err) {
			return err
		}
		return reject(out, verify.StageCommit, verify.KindCommitFailed, err)
	}
	out.Advance(verify.StateCommitted)
	return nil
}

// reject 进入 Rejected 并返回带阶段标签的错误
func reject(out *verify.Outcome, stage verify.Stage, kind verify.ErrorKind, err error) error {
	out.Kind = kind
	out.Error = err.Error()
	out.Advance(verify.StateRejected)
	return &verify.StageError{Stage: stage, Kind: kind, Err: err}
}

// cancelled 错误是否来自本次调用的上下文取消
func cancelled(ctx context.Context, err error) bool {
	ctxErr := ctx.Err()
	return ctxErr != nil && errors.Is(err, ctxErr)
}

// finish 记录指标、发布终态事件并输出日志
func (s *Service) finish(out *verify.Outcome, err error) {
	recordOutcome(out)

	if !out.State.IsTerminal() {
		if s.logger != nil {
			s.logger.Debugf("提交已取消: id=%s intent=%s state=%s err=%v", out.SubmissionID, out.Intent, out.State, err)
		}
		return
	}

	if s.eventBus != nil {
		s.eventBus.Publish(outcomeEventType(out.State), out)
	}

	if s.logger == nil {
		return
	}
	switch out.State {
	case verify.StateRejected:
		s.logger.Warnf("❌ 提交被拒绝: id=%s intent=%s height=%d hash=%s kind=%s err=%v",
			out.SubmissionID, out.Intent, out.Height, out.BlockHash, out.Kind, err)
	default:
		s.logger.Infof("✅ 提交完成: id=%s intent=%s height=%d hash=%s state=%s elapsed=%s",
			out.SubmissionID, out.Intent, out.Height, out.BlockHash, out.State, out.Elapsed)
	}
}

// outcomeEventType 终态对应的事件类型
func outcomeEventType(state verify.State) event.EventType {
	switch state {
	case verify.StateCommitted:
		return event.EventTypeSubmissionCommitted
	case verify.StateEvaluated:
		return event.EventTypeSubmissionEvaluated
	default:
		return event.EventTypeSubmissionRejected
	}
}
