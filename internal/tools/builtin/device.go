package builtin

import (
	"context"
	"encoding/json"
)

// HostInfo is whatever a concrete device/OS integration can supply about
// itself. ACC core never depends on a real implementation — when none is
// wired, these tools report "unavailable" rather than erroring, since an
// LLM asking for battery level on a desktop simulator is an expected,
// recoverable case, not a failure.
type HostInfo interface {
	BatteryLevel() (percent int, ok bool)
	DeviceModel() (model string, ok bool)
	OSVersion() (version string, ok bool)
}

// NoHostInfo is the default HostInfo: nothing is available.
type NoHostInfo struct{}

func (NoHostInfo) BatteryLevel() (int, bool)    { return 0, false }
func (NoHostInfo) DeviceModel() (string, bool)  { return "", false }
func (NoHostInfo) OSVersion() (string, bool)    { return "", false }

// BatteryLevelTool reports the host battery level, if known.
type BatteryLevelTool struct {
	Host HostInfo
}

func NewBatteryLevelTool(host HostInfo) BatteryLevelTool {
	if host == nil {
		host = NoHostInfo{}
	}
	return BatteryLevelTool{Host: host}
}

func (BatteryLevelTool) Name() string        { return "get_battery_level" }
func (BatteryLevelTool) Description() string { return "Returns the device's battery level percentage, if available." }
func (BatteryLevelTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{}}`)
}

func (t BatteryLevelTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	pct, ok := t.Host.BatteryLevel()
	if !ok {
		return "unavailable", nil
	}
	return formatPercent(pct), nil
}

// DeviceInfoTool reports the host device model and OS version, if known.
type DeviceInfoTool struct {
	Host HostInfo
}

func NewDeviceInfoTool(host HostInfo) DeviceInfoTool {
	if host == nil {
		host = NoHostInfo{}
	}
	return DeviceInfoTool{Host: host}
}

func (DeviceInfoTool) Name() string        { return "get_device_info" }
func (DeviceInfoTool) Description() string { return "Returns the device model and OS version, if available." }
func (DeviceInfoTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{}}`)
}

func (t DeviceInfoTool) Execute(ctx context.Context, input json.RawMessage) (string, error) {
	model, modelOK := t.Host.DeviceModel()
	version, versionOK := t.Host.OSVersion()
	if !modelOK && !versionOK {
		return "unavailable", nil
	}
	out := ""
	if modelOK {
		out += "model=" + model + " "
	}
	if versionOK {
		out += "os=" + version
	}
	return out, nil
}

func formatPercent(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	digits := []byte{}
	n := pct
	if n == 0 {
		digits = []byte{'0'}
	}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits) + "%"
}
