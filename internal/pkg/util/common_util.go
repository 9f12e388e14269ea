package util

import (
	"fmt"
	"net/url"
)

// DefaultAvatar 根据用户名生成确定性的默认头像地址
func DefaultAvatar(username string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/initials/svg?seed=%s", url.QueryEscape(username))
}
