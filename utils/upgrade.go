package utils

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mcc-lang/mcc/consts"
	"github.com/mcc-lang/mcc/logger"
	"github.com/mcc-lang/mcc/term"
)

const (
	checkFailedPrefix = "Check upgrade failed:\n"
)

var (
	ErrInvalidVersion = errors.New("invalid version")

	remoteVersionFilePath = path.Join(consts.MccPath, "remote_version")

	client = http.Client{
		Timeout: time.Duration(500 * time.Millisecond),
	}
)

// CheckUpgrade looks for a newer release. The remote version is cached
// under consts.MccPath for 96 hours. The caller adds itself to wg
// before the call; CheckUpgrade only marks it done.
func CheckUpgrade(wg *sync.WaitGroup) {
	defer wg.Done()

	if consts.MccPath == "" {
		return
	}

	stat, err := os.Stat(remoteVersionFilePath)
	if err == nil && stat.ModTime().After(time.Now().Add(-time.Hour*96)) {
		remoteVersionBytes, err := os.ReadFile(remoteVersionFilePath)
		if err != nil {
			return
		}
		IsVersionNewer(string(remoteVersionBytes))
		return
	}

	resp, err := client.Get(consts.ReleaseApiUrl)
	if err != nil {
		logger.W("[upgrade] %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		logger.W("[upgrade] status code %d", resp.StatusCode)
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		term.Warn("%s", checkFailedPrefix+err.Error())
		return
	}

	newest := gjson.ParseBytes(body).Map()["tag_name"].String()
	if newest == "" {
		term.Warn("%s", checkFailedPrefix+"can't get newest version")
		return
	}

	IsVersionNewer(newest[1:])
	if err = os.MkdirAll(consts.MccPath, 0755); err != nil {
		return
	}
	if err = os.WriteFile(remoteVersionFilePath, []byte(newest[1:]), 0644); err != nil {
		term.Warn("%s", checkFailedPrefix+err.Error())
	}
}

// IsVersionNewer prints a notice if get is newer than the running
// version. Versions are three dot separated decimal components.
func IsVersionNewer(get string) {
	if strings.Count(get, ".") != 2 {
		term.Warn("%s", checkFailedPrefix+ErrInvalidVersion.Error())
		return
	}

	nowArr := strings.Split(consts.VERSION, ".")
	getArr := strings.Split(get, ".")
	for i := 0; i < 3; i++ {
		if nowArr[i] == getArr[i] {
			continue
		}
		if len(nowArr[i]) > len(getArr[i]) {
			return
		}
		if len(nowArr[i]) == len(getArr[i]) && nowArr[i] > getArr[i] {
			return
		}
		term.Info("New version available: v%s", get)
		return
	}
}
