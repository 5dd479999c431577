package client

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
	tcsms "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/sms/v20210111"
)

var _ Client = (*TencentSMS)(nil)

const tencentEndpoint = "sms.tencentcloudapi.com"

// TencentSMS 腾讯云短信实现
type TencentSMS struct {
	client   *tcsms.Client
	sdkAppID string
}

func (c *TencentSMS) Send(req SendReq) (SendResp, error) {
	if len(req.PhoneNumbers) == 0 {
		return SendResp{}, fmt.Errorf("%w: %v", ErrInvalidParameter, "手机号码不能为空")
	}

	request := tcsms.NewSendSmsRequest()
	request.PhoneNumberSet = common.StringPtrs(req.PhoneNumbers)
	request.SmsSdkAppId = common.StringPtr(c.sdkAppID)
	request.SignName = common.StringPtr(req.SignName)
	request.TemplateId = common.StringPtr(req.TemplateID)
	// 腾讯云模板参数按占位符顺序传值，这里按参数名排序保证稳定
	request.TemplateParamSet = common.StringPtrs(orderedParams(req.TemplateParam))

	response, err := c.client.SendSms(request)
	if err != nil {
		return SendResp{}, fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	if response.Response == nil {
		return SendResp{}, fmt.Errorf("%w: %v", ErrSendFailed, "响应异常")
	}

	result := SendResp{
		PhoneNumbers: make(map[string]SendRespStatus),
	}
	if response.Response.RequestId != nil {
		result.RequestID = *response.Response.RequestId
	}
	for _, status := range response.Response.SendStatusSet {
		if status == nil || status.PhoneNumber == nil {
			continue
		}
		code := ""
		if status.Code != nil {
			code = *status.Code
		}
		// 腾讯云成功码为 Ok，统一成 OK
		if strings.EqualFold(code, OK) {
			code = OK
		}
		message := ""
		if status.Message != nil {
			message = *status.Message
		}
		cleanPhone := strings.TrimPrefix(*status.PhoneNumber, "+86")
		result.PhoneNumbers[cleanPhone] = SendRespStatus{
			Code:    code,
			Message: message,
		}
	}
	return result, nil
}

func orderedParams(params map[string]string) []string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	values := make([]string, 0, len(keys))
	for _, key := range keys {
		values = append(values, params[key])
	}
	return values
}

// NewTencentSMS 创建腾讯云短信实例
func NewTencentSMS(region, secretID, secretKey, sdkAppID string) (*TencentSMS, error) {
	credential := common.NewCredential(secretID, secretKey)
	cpf := profile.NewClientProfile()
	cpf.HttpProfile.Endpoint = tencentEndpoint
	c, err := tcsms.NewClient(credential, region, cpf)
	if err != nil {
		return nil, err
	}
	return &TencentSMS{client: c, sdkAppID: sdkAppID}, nil
}
