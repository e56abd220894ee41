//go:build darwin

package selection

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation
#include <ApplicationServices/ApplicationServices.h>
#include <stdlib.h>

static int axTrusted(int prompt) {
	if (!prompt) {
		return AXIsProcessTrusted() ? 1 : 0;
	}
	const void *keys[] = {kAXTrustedCheckOptionPrompt};
	const void *values[] = {kCFBooleanTrue};
	CFDictionaryRef options = CFDictionaryCreate(kCFAllocatorDefault,
		keys, values, 1,
		&kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
	Boolean trusted = AXIsProcessTrustedWithOptions(options);
	CFRelease(options);
	return trusted ? 1 : 0;
}

static int copyFocusedElement(AXUIElementRef *out) {
	AXUIElementRef system = AXUIElementCreateSystemWide();
	CFTypeRef focused = NULL;
	AXError err = AXUIElementCopyAttributeValue(system, kAXFocusedUIElementAttribute, &focused);
	CFRelease(system);
	if (err != kAXErrorSuccess || focused == NULL) {
		return err != kAXErrorSuccess ? err : kAXErrorNoValue;
	}
	*out = (AXUIElementRef)focused;
	return kAXErrorSuccess;
}

// copySelectedText stores a malloc'd UTF-8 copy of the focused element's
// selected text in *out on success.
static int copySelectedText(char **out) {
	*out = NULL;

	AXUIElementRef focused = NULL;
	AXError err = copyFocusedElement(&focused);
	if (err != kAXErrorSuccess) {
		return err;
	}

	CFTypeRef selected = NULL;
	err = AXUIElementCopyAttributeValue(focused, kAXSelectedTextAttribute, &selected);
	CFRelease(focused);
	if (err != kAXErrorSuccess || selected == NULL) {
		return err != kAXErrorSuccess ? err : kAXErrorNoValue;
	}
	if (CFGetTypeID(selected) != CFStringGetTypeID()) {
		CFRelease(selected);
		return kAXErrorIllegalArgument;
	}

	CFStringRef str = (CFStringRef)selected;
	CFIndex max = CFStringGetMaximumSizeForEncoding(CFStringGetLength(str), kCFStringEncodingUTF8) + 1;
	char *buf = malloc(max);
	if (buf == NULL || !CFStringGetCString(str, buf, max, kCFStringEncodingUTF8)) {
		free(buf);
		CFRelease(selected);
		return kAXErrorFailure;
	}
	CFRelease(selected);

	*out = buf;
	return kAXErrorSuccess;
}

static int setSelectedText(const char *text) {
	AXUIElementRef focused = NULL;
	AXError err = copyFocusedElement(&focused);
	if (err != kAXErrorSuccess) {
		return err;
	}

	CFStringRef value = CFStringCreateWithCString(kCFAllocatorDefault, text, kCFStringEncodingUTF8);
	if (value == NULL) {
		CFRelease(focused);
		return kAXErrorFailure;
	}

	err = AXUIElementSetAttributeValue(focused, kAXSelectedTextAttribute, (CFTypeRef)value);
	CFRelease(value);
	CFRelease(focused);
	return err;
}
*/
import "C"

import (
	"log/slog"
	"sync"
	"unsafe"
)

var promptOnce sync.Once

type accessor struct{}

func newAccessor() Accessor {
	return accessor{}
}

// ensureTrusted reports whether the process holds accessibility permission.
// The OS permission prompt is requested at most once per process; afterwards
// every call keeps reflecting the live trust state, so a grant made while
// running takes effect on the next check.
func ensureTrusted() bool {
	if C.axTrusted(0) == 1 {
		return true
	}
	promptOnce.Do(func() {
		slog.Warn("accessibility permission not granted, falling back to clipboard capture",
			"hint", "System Settings -> Privacy & Security -> Accessibility: enable layfix")
		C.axTrusted(1)
	})
	return C.axTrusted(0) == 1
}

func (accessor) ReadSelected() (string, error) {
	if !ensureTrusted() {
		return "", ErrUnavailable
	}

	var out *C.char
	if C.copySelectedText(&out) != 0 || out == nil {
		return "", ErrUnavailable
	}
	defer C.free(unsafe.Pointer(out))

	text := C.GoString(out)
	if text == "" {
		return "", ErrUnavailable
	}
	return text, nil
}

func (accessor) WriteSelected(text string) error {
	if !ensureTrusted() {
		return ErrUnavailable
	}

	ctext := C.CString(text)
	defer C.free(unsafe.Pointer(ctext))

	if C.setSelectedText(ctext) != 0 {
		return ErrUnavailable
	}
	return nil
}
