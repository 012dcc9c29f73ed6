package worker

import (
	"context"
	"strings"

	"github.com/kickslife/storefront/internal/logger"
	"github.com/kickslife/storefront/internal/models"
	"github.com/kickslife/storefront/internal/queue"

	"github.com/hibiken/asynq"
)

// OrderLoader 按 ID 读取订单（含订单项）
type OrderLoader interface {
	GetByID(id uint) (*models.Order, error)
}

// OrderMailer 订单邮件发送能力
type OrderMailer interface {
	Enabled() bool
	SendOrderNotification(ctx context.Context, order *models.Order) error
	SendOrderStatusEmail(ctx context.Context, order *models.Order, status string) error
}

// Consumer 异步任务消费者
type Consumer struct {
	orders OrderLoader
	mailer OrderMailer
}

// NewConsumer 创建消费者
func NewConsumer(orders OrderLoader, mailer OrderMailer) *Consumer {
	return &Consumer{
		orders: orders,
		mailer: mailer,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderNotify, c.handleOrderNotify)
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
}

func (c *Consumer) handleOrderNotify(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderNotifyPayload(task)
	if err != nil {
		logger.Warnw("worker_order_notify_unmarshal_failed", "error", err)
		return err
	}
	order, skip, err := c.loadOrder("worker_order_notify", payload.OrderID)
	if skip || err != nil {
		return err
	}
	if err := c.mailer.SendOrderNotification(ctx, order); err != nil {
		logger.Warnw("worker_order_notify_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
		return err
	}
	logger.Infow("worker_order_notify_sent", "order_id", order.ID, "order_no", order.OrderNo)
	return nil
}

func (c *Consumer) handleOrderStatusEmail(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderStatusEmailPayload(task)
	if err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	order, skip, err := c.loadOrder("worker_order_status_email", payload.OrderID)
	if skip || err != nil {
		return err
	}
	receiverEmail := strings.TrimSpace(order.CustomerEmail)
	if receiverEmail == "" {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	if err := c.mailer.SendOrderStatusEmail(ctx, order, status); err != nil {
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", receiverEmail,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

// loadOrder 读取任务关联订单；skip 为 true 表示任务无需重试直接丢弃
func (c *Consumer) loadOrder(event string, orderID uint) (*models.Order, bool, error) {
	if orderID == 0 {
		logger.Debugw(event+"_skip_invalid_payload", "order_id", orderID)
		return nil, true, nil
	}
	if c.mailer == nil || !c.mailer.Enabled() {
		logger.Debugw(event+"_skip_email_disabled", "order_id", orderID)
		return nil, true, nil
	}
	if c.orders == nil {
		logger.Warnw(event+"_skip_order_loader_nil", "order_id", orderID)
		return nil, true, nil
	}
	order, err := c.orders.GetByID(orderID)
	if err != nil {
		logger.Warnw(event+"_fetch_order_failed", "order_id", orderID, "error", err)
		return nil, false, err
	}
	if order == nil {
		logger.Debugw(event+"_skip_order_not_found", "order_id", orderID)
		return nil, true, nil
	}
	return order, false, nil
}
