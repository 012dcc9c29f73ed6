package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// 优惠码类型常量
const (
	PromoDiscountTypePercentage = "percentage"
	PromoDiscountTypeFixed      = "fixed"
)

// 邮件服务提供方
const (
	EmailProviderBrevo = "brevo"
	EmailProviderSMTP  = "smtp"
)

// 上传场景
const (
	UploadSceneProduct = "product"
	UploadSceneCommon  = "common"
)

// 商店品牌信息
const (
	StoreName = "Kicks Life"
)

// OrderStatuses 全部合法订单状态
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// CompletedOrderStatuses 计入销量与完成统计的订单状态
var CompletedOrderStatuses = []string{
	OrderStatusShipped,
	OrderStatusDelivered,
}

// 队列与任务名称
const (
	QueueDefault         = "default"
	QueueCritical        = "critical"
	TaskOrderNotify      = "order:notify"
	TaskOrderStatusEmail = "order:status_email"
)
