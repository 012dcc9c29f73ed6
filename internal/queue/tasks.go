package queue

import (
	"encoding/json"

	"github.com/kickslife/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderNotify 新订单通知任务
	TaskOrderNotify = constants.TaskOrderNotify
	// TaskOrderStatusEmail 订单状态邮件通知任务
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
)

// OrderNotifyPayload 新订单通知任务载荷
type OrderNotifyPayload struct {
	OrderID uint `json:"order_id"`
}

// OrderStatusEmailPayload 订单状态邮件任务载荷
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// NewOrderNotifyTask 创建新订单通知任务
func NewOrderNotifyTask(payload OrderNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderNotify, body, asynq.MaxRetry(5)), nil
}

// NewOrderStatusEmailTask 创建订单状态邮件任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body, asynq.MaxRetry(3)), nil
}

// ParseOrderNotifyPayload 解析新订单通知载荷
func ParseOrderNotifyPayload(task *asynq.Task) (OrderNotifyPayload, error) {
	var payload OrderNotifyPayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}

// ParseOrderStatusEmailPayload 解析订单状态邮件载荷
func ParseOrderStatusEmailPayload(task *asynq.Task) (OrderStatusEmailPayload, error) {
	var payload OrderStatusEmailPayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
