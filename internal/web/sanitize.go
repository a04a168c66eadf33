package web

import (
	"html"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/microcosm-cc/bluemonday"
)

// multipartMemory matches gin's default MaxMultipartMemory.
const multipartMemory = 32 << 20

// SanitizeForm strips markup from every submitted form value before binding.
func SanitizeForm() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		var err error
		if c.ContentType() == binding.MIMEMultipartPOSTForm {
			err = c.Request.ParseMultipartForm(multipartMemory)
		} else {
			err = c.Request.ParseForm()
		}
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		clean(policy, c.Request.PostForm)
		clean(policy, c.Request.Form)
		// multipart binding reads values from here, not from PostForm
		if c.Request.MultipartForm != nil {
			clean(policy, c.Request.MultipartForm.Value)
		}

		c.Next()
	}
}

func clean(policy *bluemonday.Policy, values url.Values) {
	for key, list := range values {
		for i, v := range list {
			// StrictPolicy escapes what it keeps; templates escape on output
			list[i] = html.UnescapeString(policy.Sanitize(v))
		}
		values[key] = list
	}
}
