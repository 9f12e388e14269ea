package dto

// UploadImageDTO 图片上传结果
type UploadImageDTO struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// UploadVideoDTO 视频上传结果。宽高与时长服务端不解析，固定为 null
type UploadVideoDTO struct {
	URL      string   `json:"url"`
	Width    *int     `json:"width"`
	Height   *int     `json:"height"`
	Duration *float64 `json:"duration"`
}

// UploadCredentialDTO 前端直传凭证。未签发临时密钥，只返回目标地址与 key
type UploadCredentialDTO struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}
