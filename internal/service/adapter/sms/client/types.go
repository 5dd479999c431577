package client

import "errors"

const (
	// OK 各云厂商发送成功的统一状态码
	OK = "OK"
)

var (
	ErrInvalidParameter = errors.New("参数非法")
	ErrSendFailed       = errors.New("发送短信失败")
)

//go:generate mockgen -source=./types.go -destination=./mocks/client.mock.go -package=smsmocks -typed Client

// Client 短信供应商客户端
type Client interface {
	// Send 发送一条短信
	Send(req SendReq) (SendResp, error)
}

type SendReq struct {
	PhoneNumbers  []string          // 接收手机号
	SignName      string            // 签名
	TemplateID    string            // 供应商侧模板ID
	TemplateParam map[string]string // 模板参数
}

type SendResp struct {
	RequestID    string                    // 供应商请求ID
	PhoneNumbers map[string]SendRespStatus // 每个手机号的发送状态
}

type SendRespStatus struct {
	Code    string
	Message string
}
