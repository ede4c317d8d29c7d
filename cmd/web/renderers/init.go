package renderers

// Import all renderer packages to ensure they register themselves
import (
	_ "github.com/shencore/shen/cmd/web/renderers/image"
	_ "github.com/shencore/shen/cmd/web/renderers/text"
	_ "github.com/shencore/shen/cmd/web/renderers/video"
)
