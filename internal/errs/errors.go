package errs

import "errors"

var (
	ErrInvalidParameter = errors.New("参数非法")

	// 工厂层错误：配置问题，直接返回给调用方
	ErrDuplicateRegistration   = errors.New("适配器ID已注册")
	ErrAdapterNotRegistered    = errors.New("适配器未注册")
	ErrOrganizationIDMissing   = errors.New("配置缺少组织ID")
	ErrAdapterInitializeFailed = errors.New("适配器初始化失败")
	ErrAdapterNotFound         = errors.New("适配器实例不存在")

	// 偏好层错误
	ErrPreferenceNotFound = errors.New("用户通信偏好不存在")
	ErrIdentifierNotFound = errors.New("渠道标识不存在")

	// 适配器发送错误：编排器捕获后转为尝试下一个渠道
	ErrSendMessageFailed = errors.New("发送消息失败")
	ErrAdapterNotReady   = errors.New("适配器未初始化")
)
