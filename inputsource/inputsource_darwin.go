//go:build darwin

package inputsource

/*
#cgo LDFLAGS: -framework Carbon -framework CoreFoundation
#include <Carbon/Carbon.h>
#include <stdlib.h>

static int copyCurrentInputSource(char *idBuf, int idLen, char *nameBuf, int nameLen) {
	TISInputSourceRef source = TISCopyCurrentKeyboardInputSource();
	if (source == NULL) {
		return -1;
	}

	idBuf[0] = '\0';
	nameBuf[0] = '\0';

	CFStringRef sourceID = (CFStringRef)TISGetInputSourceProperty(source, kTISPropertyInputSourceID);
	if (sourceID != NULL) {
		CFStringGetCString(sourceID, idBuf, idLen, kCFStringEncodingUTF8);
	}
	CFStringRef name = (CFStringRef)TISGetInputSourceProperty(source, kTISPropertyLocalizedName);
	if (name != NULL) {
		CFStringGetCString(name, nameBuf, nameLen, kCFStringEncodingUTF8);
	}

	CFRelease(source);
	return 0;
}
*/
import "C"

import (
	"unsafe"

	"layfix/layout"
)

const bufLen = 256

type reader struct{}

func newReader() Reader {
	return reader{}
}

func (reader) Current() (layout.Layout, error) {
	idBuf := (*C.char)(C.malloc(bufLen))
	nameBuf := (*C.char)(C.malloc(bufLen))
	defer C.free(unsafe.Pointer(idBuf))
	defer C.free(unsafe.Pointer(nameBuf))

	if C.copyCurrentInputSource(idBuf, bufLen, nameBuf, bufLen) != 0 {
		return 0, ErrUnknown
	}

	l, ok := Classify(C.GoString(idBuf), C.GoString(nameBuf))
	if !ok {
		return 0, ErrUnknown
	}
	return l, nil
}
