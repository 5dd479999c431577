package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gotomicro/ego/core/elog"

	"communication-platform/internal/domain"
	"communication-platform/internal/errs"
	"communication-platform/internal/event/delivery"
	"communication-platform/internal/pkg/routing"
	"communication-platform/internal/repository"
	"communication-platform/internal/service/adapter"
	"communication-platform/internal/service/adapter/factory"
	"communication-platform/internal/service/preference"
)

type orchestrator struct {
	prefSvc  preference.Service
	factory  *factory.Factory
	table    routing.Table
	logRepo  repository.DeliveryLogRepository
	producer delivery.ResultEventProducer

	// attemptTimeout 单次适配器调用的超时，零值表示不限制。
	// 超时和发送失败同等对待：推进到下一个回退渠道。
	attemptTimeout time.Duration
	now            func() time.Time
	logger         *elog.Component
}

type Option func(*orchestrator)

// WithResultEventProducer 把每个终态结果投递到消息队列供下游审计
func WithResultEventProducer(producer delivery.ResultEventProducer) Option {
	return func(o *orchestrator) {
		o.producer = producer
	}
}

// WithAttemptTimeout 限制单次适配器调用的耗时
func WithAttemptTimeout(timeout time.Duration) Option {
	return func(o *orchestrator) {
		o.attemptTimeout = timeout
	}
}

// NewOrchestrator 创建编排器
func NewOrchestrator(
	prefSvc preference.Service,
	fac *factory.Factory,
	table routing.Table,
	logRepo repository.DeliveryLogRepository,
	opts ...Option,
) Orchestrator {
	o := &orchestrator{
		prefSvc: prefSvc,
		factory: fac,
		table:   table,
		logRepo: logRepo,
		now:     time.Now,
		logger:  elog.DefaultLogger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *orchestrator) SendMessage(ctx context.Context, msg domain.Message, opts domain.SendOptions) (domain.SendResult, error) {
	if err := msg.Validate(); err != nil {
		return domain.SendResult{}, err
	}
	userID := msg.Recipient.UserID

	prefs, err := o.prefSvc.GetUserRoutingPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrPreferenceNotFound) {
			return o.finish(ctx, o.terminalFailure(msg, domain.FailureReasonNoRoutingPreferences,
				fmt.Sprintf("用户 %s 没有路由偏好", userID))), nil
		}
		return domain.SendResult{}, err
	}

	if !prefs.CanReceiveMessages {
		return o.finish(ctx, o.terminalFailure(msg, domain.FailureReasonOptedOutOrNoConsent,
			"用户已退订或未授权")), nil
	}

	if o.blockedByDND(msg, opts, prefs) {
		return o.finish(ctx, o.terminalFailure(msg, domain.FailureReasonInDNDWindow,
			"当前处于用户免打扰时段")), nil
	}

	channels := o.buildChannelList(prefs, opts)
	result := o.attemptChannels(ctx, msg, prefs, channels)
	return o.finish(ctx, result), nil
}

// blockedByDND 免打扰门控：紧急消息和调用方显式覆盖不受限制
func (o *orchestrator) blockedByDND(msg domain.Message, opts domain.SendOptions, prefs domain.RoutingPreferences) bool {
	if opts.OverrideDND || msg.IsEmergency() {
		return false
	}
	return prefs.InDNDWindow(o.now().Hour())
}

// buildChannelList 首选渠道在前，除非禁用回退，否则按配置顺序追加回退渠道
func (o *orchestrator) buildChannelList(prefs domain.RoutingPreferences, opts domain.SendOptions) []domain.RoutingChannel {
	channels := []domain.RoutingChannel{prefs.Primary}
	if !opts.DisableFallback {
		channels = append(channels, prefs.Fallbacks...)
	}
	return channels
}

// attemptChannels 顺序尝试每个渠道直到一个成功或全部耗尽。
// 渠道没有可用适配器时消耗一次回退机会但不计入 ChannelsAttempted，
// 因为那里只记录真实发生过的适配器调用。
func (o *orchestrator) attemptChannels(ctx context.Context, msg domain.Message, prefs domain.RoutingPreferences, channels []domain.RoutingChannel) domain.SendResult {
	var fallbackAttempts int
	attempted := make([]domain.ChannelType, 0, len(channels))

	for _, rc := range channels {
		adapterID, ok := o.table.Resolve(rc.Channel)
		if !ok {
			o.logger.Warn("渠道没有配置适配器映射，跳过",
				elog.String("messageID", msg.ID),
				elog.String("channel", rc.Channel.String()))
			fallbackAttempts++
			continue
		}
		ad, ok := o.factory.GetAdapter(prefs.OrganizationID, adapterID)
		if !ok {
			o.logger.Warn("组织没有可用的适配器实例，跳过",
				elog.String("messageID", msg.ID),
				elog.String("organizationID", prefs.OrganizationID),
				elog.String("adapterID", adapterID))
			fallbackAttempts++
			continue
		}

		routed := msg.WithRoute(rc.Channel, rc.Identifier, prefs.Language)
		attempted = append(attempted, rc.Channel)
		deliveryRes, err := o.attempt(ctx, ad, routed)
		if err == nil && deliveryRes.Success {
			return domain.SendResult{
				MessageID:         msg.ID,
				UserID:            msg.Recipient.UserID,
				Success:           true,
				ChannelUsed:       rc.Channel,
				AdapterID:         adapterID,
				FallbackAttempts:  fallbackAttempts,
				ChannelsAttempted: attempted,
				Delivery:          &deliveryRes,
			}
		}

		// 适配器返回 error 和返回失败结果同等处理：记日志，换下一个渠道
		fallbackAttempts++
		o.logger.Info("渠道投递失败，尝试下一个回退渠道",
			elog.String("messageID", msg.ID),
			elog.String("channel", rc.Channel.String()),
			elog.String("identifier", domain.MaskIdentifier(rc.Identifier)),
			elog.FieldErr(err))
	}

	return domain.SendResult{
		MessageID:         msg.ID,
		UserID:            msg.Recipient.UserID,
		Success:           false,
		FallbackAttempts:  fallbackAttempts,
		ChannelsAttempted: attempted,
		FailureReason:     domain.FailureReasonAllChannelsFailed,
		FailureMessage:    "所有渠道均投递失败",
	}
}

// attempt 执行一次适配器调用，panic 被吞掉并当作失败处理，
// 保证一个行为异常的适配器不会中断整条回退链。
func (o *orchestrator) attempt(ctx context.Context, ad adapter.ChannelAdapter, msg domain.Message) (result domain.DeliveryResult, err error) {
	if o.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.attemptTimeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			result = domain.DeliveryResult{}
			err = fmt.Errorf("%w: 适配器panic: %v", errs.ErrSendMessageFailed, r)
		}
	}()
	return ad.Send(ctx, msg)
}

func (o *orchestrator) terminalFailure(msg domain.Message, reason domain.FailureReason, failureMsg string) domain.SendResult {
	return domain.SendResult{
		MessageID:         msg.ID,
		UserID:            msg.Recipient.UserID,
		Success:           false,
		ChannelsAttempted: []domain.ChannelType{},
		FailureReason:     reason,
		FailureMessage:    failureMsg,
	}
}

// finish 为终态结果盖时间戳、写投递日志、投递审计事件。
// 日志和事件的失败只记录，不影响返回给调用方的结果。
func (o *orchestrator) finish(ctx context.Context, result domain.SendResult) domain.SendResult {
	result.Timestamp = o.now()
	if err := o.logRepo.Append(ctx, result.UserID, result); err != nil {
		o.logger.Error("写入投递日志失败",
			elog.String("messageID", result.MessageID),
			elog.FieldErr(err))
	}
	if o.producer != nil {
		if err := o.producer.Produce(ctx, delivery.FromSendResult(result)); err != nil {
			o.logger.Error("投递结果事件发送失败",
				elog.String("messageID", result.MessageID),
				elog.FieldErr(err))
		}
	}
	return result
}

func (o *orchestrator) BroadcastMessage(ctx context.Context, template domain.Message, userIDs []string) ([]domain.SendResult, error) {
	results := make([]domain.SendResult, 0, len(userIDs))
	for _, userID := range userIDs {
		msg := template
		msg.Recipient = domain.Recipient{UserID: userID}
		result, err := o.SendMessage(ctx, msg, domain.SendOptions{})
		if err != nil {
			// 单个用户的错误转成该用户的失败结果，不中断其余用户
			result = domain.SendResult{
				MessageID:         msg.ID,
				UserID:            userID,
				Success:           false,
				ChannelsAttempted: []domain.ChannelType{},
				FailureMessage:    err.Error(),
				Timestamp:         o.now(),
			}
		}
		results = append(results, result)
	}
	return results, nil
}

func (o *orchestrator) GetDeliveryHistory(ctx context.Context, userID string, limit int) ([]domain.SendResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userID 为空", errs.ErrInvalidParameter)
	}
	return o.logRepo.List(ctx, userID, limit)
}

func (o *orchestrator) GetStatistics(ctx context.Context) (domain.SendStatistics, error) {
	results, err := o.logRepo.All(ctx)
	if err != nil {
		return domain.SendStatistics{}, err
	}
	stats := domain.SendStatistics{
		ChannelUsage: make(map[domain.ChannelType]int64),
	}
	for _, result := range results {
		stats.Total++
		if result.Success {
			stats.Succeeded++
			stats.ChannelUsage[result.ChannelUsed]++
		} else {
			stats.Failed++
		}
		stats.TotalFallbackAttempts += int64(result.FallbackAttempts)
	}
	if stats.Total > 0 {
		stats.AvgFallbackAttempts = float64(stats.TotalFallbackAttempts) / float64(stats.Total)
	}
	return stats, nil
}
