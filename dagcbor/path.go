package dagcbor

import (
	"strconv"
	"strings"
)

// pathSeg is one frame of the decoder's container-path diagnostic. Per
// spec §9, this is carried on an explicit stack pushed/popped at each
// recursion boundary rather than reconstructed from the host call stack.
type pathSeg struct {
	isMap  bool
	index  int
	key    string
	hasKey bool
}

type pathStack struct {
	segs []pathSeg
}

func newPathStack() *pathStack {
	return &pathStack{segs: make([]pathSeg, 0, 8)}
}

func (p *pathStack) pushList(index int) {
	p.segs = append(p.segs, pathSeg{isMap: false, index: index})
}

func (p *pathStack) pushMap(index int) {
	p.segs = append(p.segs, pathSeg{isMap: true, index: index})
}

// setKey records the key once it has been decoded and confirmed to be a
// string; before that, the frame renders by pair position instead.
func (p *pathStack) setKey(key string) {
	p.segs[len(p.segs)-1].key = key
	p.segs[len(p.segs)-1].hasKey = true
}

func (p *pathStack) pop() {
	p.segs = p.segs[:len(p.segs)-1]
}

func (p *pathStack) String() string {
	var sb strings.Builder
	sb.WriteString("root")
	for _, s := range p.segs {
		if s.isMap {
			if s.hasKey {
				sb.WriteString("/map[")
				sb.WriteString(strconv.Quote(s.key))
				sb.WriteString("]")
			} else {
				sb.WriteString("/map#")
				sb.WriteString(strconv.Itoa(s.index))
			}
			continue
		}
		sb.WriteString("/list[")
		sb.WriteString(strconv.Itoa(s.index))
		sb.WriteString("]")
	}
	return sb.String()
}

// encPathStack is the encode-side analogue: it walks the in-memory value
// tree rather than a byte stream, so every segment's key/index is known
// up front (no placeholder state needed).
type encPathStack struct {
	segs []string
}

func newEncPathStack() *encPathStack {
	return &encPathStack{segs: make([]string, 0, 8)}
}

func (p *encPathStack) pushList(index int) {
	p.segs = append(p.segs, "list["+strconv.Itoa(index)+"]")
}

func (p *encPathStack) pushMap(key string) {
	p.segs = append(p.segs, "map["+strconv.Quote(key)+"]")
}

func (p *encPathStack) pop() {
	p.segs = p.segs[:len(p.segs)-1]
}

func (p *encPathStack) String() string {
	if len(p.segs) == 0 {
		return "root"
	}
	return "root/" + strings.Join(p.segs, "/")
}
