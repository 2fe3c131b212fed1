package storage

import "io"

// Row is one decoded leaf cell from a table btree: its row id and
// its column values in schema order.
type Row struct {
	RowID  int64
	Fields []*Field
}

type iterFrame struct {
	page int
	idx  int
}

// RowIter walks every row of a table btree rooted at a given page, in
// left-to-right (row id ascending) order. It holds an exclusive
// borrow on the Pager for its lifetime: no other iterator or cursor
// should read through the same Pager concurrently.
type RowIter struct {
	pager *Pager
	stack []iterFrame
}

// NewRowIter begins a traversal of the table btree rooted at
// rootPage.
func NewRowIter(pager *Pager, rootPage int) *RowIter {
	return &RowIter{
		pager: pager,
		stack: []iterFrame{{page: rootPage, idx: 0}},
	}
}

// Next returns the next row in the traversal. It returns io.EOF once
// every row has been visited. Any other error aborts the traversal;
// the RowIter must not be used again after an error.
func (it *RowIter) Next() (*Row, error) {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]

		page, err := it.pager.Read(top.page)
		if err != nil {
			return nil, err
		}

		switch page.Type() {
		case PageTypeLeaf:
			if top.idx >= page.CellCount() {
				it.stack = it.stack[:len(it.stack)-1]
				continue
			}

			rowID, record, err := page.ReadRecord(top.idx)
			top.idx++
			if err != nil {
				return nil, err
			}
			return &Row{RowID: rowID, Fields: record.Fields}, nil

		case PageTypeInternal:
			if top.idx < page.CellCount() {
				node, err := page.ReadInteriorNode(top.idx)
				if err != nil {
					return nil, err
				}
				top.idx++
				it.stack = append(it.stack, iterFrame{page: int(node.LeftChild), idx: 0})
				continue
			}

			// Every numbered child has been visited; descend into the
			// right-most child by overwriting this frame instead of
			// pushing a new one. There is nothing left to do at this
			// level once the right-most subtree is exhausted, so the
			// parent frame and the right-most child's frame can share
			// a single stack slot. This keeps the stack's depth
			// bounded by the tree's height rather than its width.
			top.page = page.RightPage()
			top.idx = 0
			continue

		default:
			return nil, newError(KindUnsupportedPageType, "row iterator reached a non-table-btree page", nil)
		}
	}

	return nil, io.EOF
}
