//go:build darwin

package inject

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

// Posts Cmd+C straight to the HID event tap. Some apps drop events coming
// from the session-level source the portable path uses.
static int postCopyChord(void) {
	CGEventSourceRef source = CGEventSourceCreate(kCGEventSourceStateHIDSystemState);
	if (source == NULL) {
		return -1;
	}

	CGEventRef down = CGEventCreateKeyboardEvent(source, (CGKeyCode)8, true); // kVK_ANSI_C
	CGEventRef up = CGEventCreateKeyboardEvent(source, (CGKeyCode)8, false);
	if (down == NULL || up == NULL) {
		if (down != NULL) CFRelease(down);
		if (up != NULL) CFRelease(up);
		CFRelease(source);
		return -1;
	}

	CGEventSetFlags(down, kCGEventFlagMaskCommand);
	CGEventSetFlags(up, kCGEventFlagMaskCommand);
	CGEventPost(kCGHIDEventTap, down);
	CGEventPost(kCGHIDEventTap, up);

	CFRelease(down);
	CFRelease(up);
	CFRelease(source);
	return 0;
}
*/
import "C"

import "errors"

func copyLowLevel() error {
	if C.postCopyChord() != 0 {
		return errors.New("inject: create copy events")
	}
	return nil
}
