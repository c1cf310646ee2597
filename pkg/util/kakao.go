package util

import "regexp"

var kakaoOpenChatRegex = regexp.MustCompile(`https?://open\.kakao\.com/[^\s]+`)

// ExtractKakaoURL returns the first open-chat link found in free text, or "".
func ExtractKakaoURL(text string) string {
	return kakaoOpenChatRegex.FindString(text)
}
