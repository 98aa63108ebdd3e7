package socketcan

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"backplane/core"
)

func TestMarshalFrame(t *testing.T) {
	Convey("Standard data frame encodes correctly", t, func() {
		f := core.Frame{Address: 0x123, Length: 2, Payload: [8]byte{0xAA, 0xBB, 0xCC}}
		raw, err := MarshalFrame(f)
		So(err, ShouldBeNil)

		Convey("ID gets set correctly", func() {
			So(raw[0:4], ShouldResemble, []byte{0x23, 0x01, 0x00, 0x00})
		})

		Convey("Data length is correctly set", func() {
			So(raw[4], ShouldEqual, uint8(2))
		})

		Convey("Only valid data is copied over", func() {
			So(raw[8:], ShouldResemble, []byte{0xAA, 0xBB, 0, 0, 0, 0, 0, 0})
		})
	})

	Convey("Extended request frame sets both flags and no data", t, func() {
		f := core.Frame{Address: 0x18DAF110, Extended: true, IsRequest: true, Length: 8, Payload: [8]byte{1, 2}}
		raw, err := MarshalFrame(f)
		So(err, ShouldBeNil)
		So(raw[0:4], ShouldResemble, []byte{0x10, 0xF1, 0xDA, 0xD8})
		So(raw[4], ShouldEqual, uint8(8))
		So(raw[8:], ShouldResemble, make([]byte, 8))
	})

	Convey("Invalid frames are rejected", t, func() {
		_, err := MarshalFrame(core.Frame{Address: 0x10, Length: 9})
		So(err, ShouldEqual, core.ErrInvalidLength)

		_, err = MarshalFrame(core.Frame{Address: 0x800})
		So(err, ShouldEqual, core.ErrInvalidAddress)
	})
}

func TestUnmarshalFrame(t *testing.T) {
	Convey("A marshalled frame decodes to the same frame", t, func() {
		f := core.Frame{Address: 0x020, Length: 1, Payload: [8]byte{0x41}}
		raw, err := MarshalFrame(f)
		So(err, ShouldBeNil)

		got, err := UnmarshalFrame(raw)
		So(err, ShouldBeNil)
		So(got, ShouldResemble, f)
	})

	Convey("Request frames carry no payload", t, func() {
		raw := []byte{0x20, 0x00, 0x00, 0x40, 0x02, 0, 0, 0, 0xFF, 0xFF, 0, 0, 0, 0, 0, 0}
		got, err := UnmarshalFrame(raw)
		So(err, ShouldBeNil)
		So(got.IsRequest, ShouldBeTrue)
		So(got.Address, ShouldEqual, uint32(0x020))
		So(got.Length, ShouldEqual, uint8(2))
		So(got.Payload, ShouldResemble, [8]byte{})
	})

	Convey("Oversized DLC is clamped", t, func() {
		raw := []byte{0x01, 0x00, 0x00, 0x00, 0x0F, 0, 0, 0, 1, 2, 3, 4, 5, 6, 7, 8}
		got, err := UnmarshalFrame(raw)
		So(err, ShouldBeNil)
		So(got.Length, ShouldEqual, uint8(8))
		So(got.Payload, ShouldResemble, [8]byte{1, 2, 3, 4, 5, 6, 7, 8})
	})

	Convey("Short and error frames are rejected", t, func() {
		_, err := UnmarshalFrame(make([]byte, 8))
		So(errors.Is(err, ErrShortFrame), ShouldBeTrue)

		raw := make([]byte, FrameSize)
		raw[3] = 0x20
		_, err = UnmarshalFrame(raw)
		So(err, ShouldEqual, ErrErrorFrame)
	})
}
