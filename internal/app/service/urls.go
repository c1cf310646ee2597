package service

import "strings"

// EditURL is the private management link for a vendor.
func EditURL(baseURL, editToken string) string {
	return strings.TrimRight(baseURL, "/") + "/edit/" + editToken
}

// PublicURL is the customer-facing flyer link.
func PublicURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/s/" + slug
}
